package goform

import "strings"

// ParseName decodes a bracket-notation field name (name, name[key],
// name[key][], name[]) into a NamePath in a single pass.
//
// The first segment must address a map key: an empty name, or one that starts
// with a bracket, fails with content_disposition.
func ParseName(name string) (NamePath, error) {
	segments := strings.Split(name, "[")
	if segments[0] == "" {
		return nil, newError(CodeContentDisposition, name, nil)
	}
	path := make(NamePath, 0, len(segments))
	for _, seg := range segments {
		var part NamePart
		switch {
		case seg == "]":
			part = ArrayPart()
		case strings.HasSuffix(seg, "]"):
			part = MapPart(strings.TrimRight(seg, "]"))
		default:
			part = MapPart(seg)
		}
		if len(path) == 0 && !part.IsMap() {
			return nil, newError(CodeContentDisposition, name, nil)
		}
		path = append(path, part)
	}
	return path, nil
}
