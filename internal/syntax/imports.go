package syntax

// ImportContext returns the distinct namespace paths imported by the file, in declaration order
func (f *File) ImportContext() []string {
	if f == nil {
		return []string{}
	}
	return ImportPaths(f.Usings)
}

// ImportPaths extracts the distinct imported paths of a list of directives, keeping order
func ImportPaths(usings []UsingDirective) []string {
	seen := make(map[string]bool, len(usings))
	paths := make([]string, 0, len(usings))
	for _, u := range usings {
		if u.Name == "" || seen[u.Name] {
			continue
		}
		seen[u.Name] = true
		paths = append(paths, u.Name)
	}
	return paths
}

// GlobalUsings collects the global using directives across files, first occurrence wins
func GlobalUsings(files []*File) []UsingDirective {
	seen := make(map[string]bool)
	var result []UsingDirective
	for _, f := range files {
		if f == nil {
			continue
		}
		for _, u := range f.Usings {
			if !u.Global {
				continue
			}
			key := u.Local().String()
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, u)
		}
	}
	return result
}

// EnclosingNamespaces lists a namespace and its parents, innermost first
func EnclosingNamespaces(namespace string) []string {
	var result []string
	for namespace != "" {
		result = append(result, namespace)
		i := lastDot(namespace)
		if i < 0 {
			break
		}
		namespace = namespace[:i]
	}
	return result
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
