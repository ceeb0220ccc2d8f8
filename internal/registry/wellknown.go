package registry

// predefinedTypes are type keywords that never need qualification
var predefinedTypes = map[string]bool{
	"bool":    true,
	"byte":    true,
	"sbyte":   true,
	"char":    true,
	"decimal": true,
	"double":  true,
	"float":   true,
	"int":     true,
	"uint":    true,
	"nint":    true,
	"nuint":   true,
	"long":    true,
	"ulong":   true,
	"short":   true,
	"ushort":  true,
	"object":  true,
	"string":  true,
	"void":    true,
	"dynamic": true,
	"var":     true,
}

// wellKnownTypes are framework types resolvable without being declared in
// the compilation, keyed by dotted name with arity suffix
var wellKnownTypes = map[string]bool{
	"System.Object":         true,
	"System.String":         true,
	"System.Boolean":        true,
	"System.Byte":           true,
	"System.SByte":          true,
	"System.Char":           true,
	"System.Decimal":        true,
	"System.Double":         true,
	"System.Single":         true,
	"System.Int16":          true,
	"System.Int32":          true,
	"System.Int64":          true,
	"System.UInt16":         true,
	"System.UInt32":         true,
	"System.UInt64":         true,
	"System.IntPtr":         true,
	"System.DateTime":       true,
	"System.DateTimeOffset": true,
	"System.DateOnly":       true,
	"System.TimeOnly":       true,
	"System.TimeSpan":       true,
	"System.Guid":           true,
	"System.Uri":            true,
	"System.Version":        true,
	"System.Type":           true,
	"System.Exception":      true,
	"System.Nullable`1":     true,
	"System.Lazy`1":         true,
	"System.Action":         true,
	"System.Action`1":       true,
	"System.Action`2":       true,
	"System.Func`1":         true,
	"System.Func`2":         true,
	"System.Func`3":         true,
	"System.Tuple`2":        true,
	"System.Memory`1":       true,

	"System.Collections.IEnumerable":                       true,
	"System.Collections.Generic.IEnumerable`1":             true,
	"System.Collections.Generic.ICollection`1":             true,
	"System.Collections.Generic.IList`1":                   true,
	"System.Collections.Generic.List`1":                    true,
	"System.Collections.Generic.IReadOnlyCollection`1":     true,
	"System.Collections.Generic.IReadOnlyList`1":           true,
	"System.Collections.Generic.ISet`1":                    true,
	"System.Collections.Generic.HashSet`1":                 true,
	"System.Collections.Generic.Queue`1":                   true,
	"System.Collections.Generic.Stack`1":                   true,
	"System.Collections.Generic.IDictionary`2":             true,
	"System.Collections.Generic.Dictionary`2":              true,
	"System.Collections.Generic.IReadOnlyDictionary`2":     true,
	"System.Collections.Generic.KeyValuePair`2":            true,
	"System.Collections.Concurrent.ConcurrentDictionary`2": true,
	"System.Collections.Immutable.ImmutableArray`1":        true,
	"System.Collections.Immutable.ImmutableList`1":         true,

	"System.Threading.CancellationToken":   true,
	"System.Threading.Tasks.Task":          true,
	"System.Threading.Tasks.Task`1":        true,
	"System.Threading.Tasks.ValueTask":     true,
	"System.Threading.Tasks.ValueTask`1":   true,
	"System.Text.StringBuilder":            true,
	"System.Text.Json.JsonElement":         true,
	"System.IO.Stream":                     true,
	"System.IO.FileInfo":                   true,
	"System.Linq.IQueryable`1":             true,
	"System.Linq.IGrouping`2":              true,
	"System.Net.IPAddress":                 true,
	"System.Numerics.BigInteger":           true,
	"System.Text.RegularExpressions.Regex": true,
}
