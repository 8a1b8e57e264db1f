// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (index records, reports) and contracts (interfaces) only.
package domain
