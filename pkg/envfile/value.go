package envfile

// Kind identifies how a Value was typed at its source.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindNull
)

// Value is a variable value. Values read from env files are always strings;
// numbers, booleans and null come from legacy JSON or built-in presets.
type Value struct {
	kind Kind
	text string
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a numeric value from its literal text.
func Number(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindBool, text: "true"}
	}
	return Value{kind: KindBool, text: "false"}
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull, text: "null"}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the literal text of the value.
func (v Value) Text() string {
	return v.text
}

// IsNull reports whether v is an explicit null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsEmpty reports whether v is the empty string.
func (v Value) IsEmpty() bool {
	return v.kind == KindString && v.text == ""
}

func (v Value) String() string {
	return v.text
}
