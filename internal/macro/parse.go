package macro

import (
	"fmt"
	"strings"
)

// parseCall parses "(args) }}" starting at i, just after the macro name.
// It returns the arguments and the index after the closing delimiter.
func parseCall(s string, i int) (Args, int, error) {
	var args Args

	i = skipSpace(s, i)
	if i >= len(s) || s[i] != '(' {
		return args, 0, fmt.Errorf("%w: expected '(' after macro name", ErrSyntax)
	}
	i++

	for {
		i = skipSpace(s, i)
		if i >= len(s) {
			return args, 0, fmt.Errorf("%w: unterminated argument list", ErrSyntax)
		}
		if s[i] == ')' {
			i++
			break
		}

		key, next := readKeyword(s, i)
		if key != "" {
			i = next
		} else if len(args.Keyword) > 0 {
			return args, 0, fmt.Errorf("%w: positional argument follows keyword argument", ErrSyntax)
		}

		val, next, err := readString(s, i)
		if err != nil {
			return args, 0, err
		}
		i = next

		if key != "" {
			if args.Keyword == nil {
				args.Keyword = make(map[string]string)
			}
			if _, dup := args.Keyword[key]; dup {
				return args, 0, fmt.Errorf("%w: keyword %q repeated", ErrSyntax, key)
			}
			args.Keyword[key] = val
		} else {
			args.Positional = append(args.Positional, val)
		}

		i = skipSpace(s, i)
		if i >= len(s) {
			return args, 0, fmt.Errorf("%w: unterminated argument list", ErrSyntax)
		}
		switch s[i] {
		case ',':
			i++
		case ')':
		default:
			return args, 0, fmt.Errorf("%w: unexpected %q in argument list", ErrSyntax, s[i])
		}
	}

	i = skipSpace(s, i)
	if !strings.HasPrefix(s[i:], closeDelim) {
		return args, 0, fmt.Errorf("%w: expected %q", ErrSyntax, closeDelim)
	}
	return args, i + len(closeDelim), nil
}

// readKeyword reads "name =" at i. It returns "" when no keyword is present.
func readKeyword(s string, i int) (string, int) {
	j := i
	for j < len(s) && isIdentChar(s[j], j == i) {
		j++
	}
	if j == i {
		return "", i
	}
	k := skipSpace(s, j)
	if k >= len(s) || s[k] != '=' {
		return "", i
	}
	return s[i:j], skipSpace(s, k+1)
}

// readString reads a single- or double-quoted literal at i.
func readString(s string, i int) (string, int, error) {
	if i >= len(s) || (s[i] != '"' && s[i] != '\'') {
		return "", 0, fmt.Errorf("%w: expected quoted string", ErrSyntax)
	}
	quote := s[i]
	i++

	var sb strings.Builder
	for i < len(s) {
		c := s[i]
		switch {
		case c == quote:
			return sb.String(), i + 1, nil
		case c == '\\' && i+1 < len(s):
			sb.WriteString(unescape(s[i+1]))
			i += 2
		case c == '\n':
			return "", 0, fmt.Errorf("%w: newline in string literal", ErrSyntax)
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated string literal", ErrSyntax)
}

// unescape resolves the character after a backslash. Unknown escapes keep
// the backslash so Windows-style paths survive.
func unescape(c byte) string {
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case '\\', '"', '\'':
		return string(c)
	default:
		return "\\" + string(c)
	}
}
