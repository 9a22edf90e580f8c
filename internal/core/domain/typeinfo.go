package domain

// TypeInfo describes a materialized type, whether it was loaded from a file,
// synthesized or provided by the runtime itself.
type TypeInfo struct {
	Name       string
	Kind       Kind
	Supertypes []string
	Interfaces []string
	Methods    []string
	File       string
	Builtin    bool
}

// DefaultBuiltins are the types the runtime provides without any source file.
func DefaultBuiltins() []TypeInfo {
	return []TypeInfo{
		{Name: "stdClass", Kind: KindClass, Builtin: true},
		{Name: "Traversable", Kind: KindInterface, Builtin: true},
		{Name: "Iterator", Kind: KindInterface, Supertypes: []string{"Traversable"}, Builtin: true},
		{Name: "IteratorAggregate", Kind: KindInterface, Supertypes: []string{"Traversable"}, Builtin: true},
		{Name: "ArrayAccess", Kind: KindInterface, Builtin: true},
		{Name: "Countable", Kind: KindInterface, Builtin: true},
		{Name: "Serializable", Kind: KindInterface, Builtin: true},
		{Name: "JsonSerializable", Kind: KindInterface, Builtin: true},
		{Name: "Throwable", Kind: KindInterface, Builtin: true},
		{Name: "Exception", Kind: KindClass, Interfaces: []string{"Throwable"}, Builtin: true},
		{Name: "ErrorException", Kind: KindClass, Supertypes: []string{"Exception"}, Builtin: true},
		{Name: "LogicException", Kind: KindClass, Supertypes: []string{"Exception"}, Builtin: true},
		{Name: "RuntimeException", Kind: KindClass, Supertypes: []string{"Exception"}, Builtin: true},
		{Name: "InvalidArgumentException", Kind: KindClass, Supertypes: []string{"LogicException"}, Builtin: true},
		{Name: "ArrayIterator", Kind: KindClass, Interfaces: []string{"Iterator", "ArrayAccess", "Countable", "Serializable"}, Builtin: true},
		{Name: "ArrayObject", Kind: KindClass, Interfaces: []string{"IteratorAggregate", "ArrayAccess", "Countable", "Serializable"}, Builtin: true},
		{Name: "PDO", Kind: KindClass, Builtin: true},
		{Name: "PDOStatement", Kind: KindClass, Interfaces: []string{"Traversable"}, Builtin: true},
	}
}
