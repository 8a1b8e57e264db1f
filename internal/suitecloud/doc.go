// Package suitecloud implements domain.SuiteCloudClient on top of the
// SuiteCloud command-line tool.
//
// The account is never contacted directly. Every operation is one fixed
// command shape run through a domain.Runner from the workspace directory:
//   - Listing the objects on the account ("object:list").
//   - Importing objects into the project ("object:import").
//   - Deploying one object after writing its deploy.xml manifest
//     ("project:deploy").
//
// Output of object:list is parsed line by line at the first colon. Nothing
// else about the tool's output is interpreted; failures surface as the
// runner's errors.
package suitecloud
