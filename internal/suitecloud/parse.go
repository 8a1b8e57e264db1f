package suitecloud

import (
	"strings"

	"suitedeploy/internal/domain"
)

// ParseObjectList splits object:list output into objects.
//
// Each line is cut at its first colon into type and id. A line is kept when
// the colon is not the first character and something follows it; everything
// else, blank lines included, is returned in skipped. Trailing carriage
// returns and spaces are trimmed first.
func ParseObjectList(out string) (objects []domain.ServerObject, skipped []string) {
	objects = []domain.ServerObject{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r ")
		colon := strings.IndexByte(line, ':')
		if colon <= 0 || colon == len(line)-1 {
			skipped = append(skipped, line)
			continue
		}
		objects = append(objects, domain.ServerObject{
			Type: domain.ObjectType(line[:colon]),
			ID:   domain.ScriptID(line[colon+1:]),
		})
	}
	return objects, skipped
}
