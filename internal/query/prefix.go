package query

// Flag is a bitset of the contextual properties a prefix-table entry
// carries (§3 Prefix descriptor).
type Flag uint16

const (
	FlagField Flag = 1 << iota
	FlagBoolean
	FlagSingle
	FlagWildcard
	FlagRegex
	FlagDoRegex
	FlagExpand
	FlagDoExpand
	FlagOrphan
	FlagRange
	FlagPathname
)

// Has reports whether f carries every bit in bits.
func (f Flag) Has(bits Flag) bool {
	return f&bits == bits
}

// Descriptor is a static prefix-table entry: an operator or field
// keyword and the rules that govern how it combines its children.
type Descriptor struct {
	Name    string
	Op      Op
	Initial Initial
	Flags   Flag
}

// Table is the fixed prefix table of §6. Order matches the original
// notmuch source's `prefixes[]` array; dispatch does a linear scan,
// which is adequate given its bounded, small size (§9 design notes).
var Table = []Descriptor{
	{Name: "and", Op: OpAnd, Initial: InitialMatchAll},
	{Name: "attachment", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagWildcard | FlagExpand},
	{Name: "body", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField},
	{Name: "date", Op: OpInvalid, Initial: InitialMatchAll, Flags: FlagRange},
	{Name: "from", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagWildcard | FlagRegex | FlagExpand},
	{Name: "folder", Op: OpOr, Initial: InitialMatchNothing, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex | FlagExpand | FlagPathname},
	{Name: "id", Op: OpOr, Initial: InitialMatchNothing, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex},
	{Name: "infix", Op: OpInvalid, Initial: InitialMatchAll, Flags: FlagSingle | FlagOrphan},
	{Name: "is", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex | FlagExpand},
	{Name: "lastmod", Op: OpInvalid, Initial: InitialMatchAll, Flags: FlagRange},
	{Name: "matching", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagDoExpand},
	{Name: "mid", Op: OpOr, Initial: InitialMatchNothing, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex},
	{Name: "mimetype", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagWildcard | FlagExpand},
	{Name: "not", Op: OpAndNot, Initial: InitialMatchAll},
	{Name: "of", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagDoExpand},
	{Name: "or", Op: OpOr, Initial: InitialMatchNothing},
	{Name: "path", Op: OpOr, Initial: InitialMatchNothing, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex | FlagPathname},
	{Name: "property", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex | FlagExpand},
	{Name: "query", Op: OpInvalid, Initial: InitialMatchNothing, Flags: FlagSingle | FlagOrphan},
	{Name: "regex", Op: OpInvalid, Initial: InitialMatchAll, Flags: FlagSingle | FlagDoRegex},
	{Name: "rx", Op: OpInvalid, Initial: InitialMatchAll, Flags: FlagSingle | FlagDoRegex},
	{Name: "starts-with", Op: OpWildcard, Initial: InitialMatchAll, Flags: FlagSingle},
	{Name: "subject", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagWildcard | FlagRegex | FlagExpand},
	{Name: "tag", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex | FlagExpand},
	{Name: "thread", Op: OpOr, Initial: InitialMatchNothing, Flags: FlagField | FlagBoolean | FlagWildcard | FlagRegex | FlagExpand},
	{Name: "to", Op: OpAnd, Initial: InitialMatchAll, Flags: FlagField | FlagWildcard | FlagExpand},
}

func lookupPrefix(name string) (Descriptor, bool) {
	for _, d := range Table {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// fieldPrefixes returns every FIELD-flagged table entry, in table
// order, for the implicit-OR-over-field-set rule (§4.3 rule 2).
func fieldPrefixes() []Descriptor {
	var out []Descriptor
	for _, d := range Table {
		if d.Flags.Has(FlagField) {
			out = append(out, d)
		}
	}
	return out
}
