package names

import "slices"

// AssignAliases maps export keys to short interface aliases. Keys are visited
// in sorted order and the first key to claim an alias keeps it; an alias
// equal to any export key is never assigned.
func AssignAliases(keys []string) map[string]string {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)

	exists := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		exists[k] = struct{}{}
	}

	aliases := make(map[string]string)
	used := make(map[string]struct{})
	for _, key := range sorted {
		alias, ok := InterfaceName(StripVersion(key))
		if !ok {
			continue
		}
		if _, clash := exists[alias]; clash {
			continue
		}
		if _, clash := used[alias]; clash {
			continue
		}
		aliases[key] = alias
		used[alias] = struct{}{}
	}
	return aliases
}
