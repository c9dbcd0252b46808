package commands

import (
	"regexp"
	"strings"

	constants "github.com/inference-gateway/hotcli/internal/constants"
)

// quotedSegment matches a double-quoted literal, quotes included
var quotedSegment = regexp.MustCompile(`"[^"]*"`)

// ParseLine splits a console line into group, command name and arguments.
//
// Double-quoted segments are lifted out first and replaced with a placeholder
// so that the remainder can be split on whitespace; each placeholder is then
// restored, in order, with the segment's interior verbatim. The first token is
// a group only when it was typed unquoted, isGroup accepts it and a command
// name follows; otherwise the group is "main".
func ParseLine(line string, isGroup func(string) bool) ParsedLine {
	var literals []string
	for _, segment := range quotedSegment.FindAllString(line, -1) {
		literals = append(literals, segment[1:len(segment)-1])
	}

	tokens := strings.Fields(quotedSegment.ReplaceAllLiteralString(line, constants.LiteralPlaceholder))
	groupCandidate := len(tokens) >= 2 && isGroup != nil &&
		!strings.Contains(tokens[0], constants.LiteralPlaceholder) &&
		isGroup(strings.ToLower(tokens[0]))

	for i, token := range tokens {
		for strings.Contains(token, constants.LiteralPlaceholder) && len(literals) > 0 {
			token = strings.Replace(token, constants.LiteralPlaceholder, literals[0], 1)
			literals = literals[1:]
		}
		tokens[i] = token
	}

	parsed := ParsedLine{Group: constants.DefaultGroup, Args: []string{}}
	if len(tokens) == 0 {
		return parsed
	}

	if groupCandidate {
		parsed.Group = strings.ToLower(tokens[0])
		parsed.Name = strings.ToLower(tokens[1])
		parsed.Args = append(parsed.Args, tokens[2:]...)
		return parsed
	}

	parsed.Name = strings.ToLower(tokens[0])
	parsed.Args = append(parsed.Args, tokens[1:]...)
	return parsed
}
