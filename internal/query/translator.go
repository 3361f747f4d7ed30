package query

import (
	"strings"

	stderrors "github.com/sourcegraph/sourcegraph/lib/errors"

	"github.com/sourcegraph/mailquery/internal/sexp"
	"github.com/sourcegraph/mailquery/internal/sexpenv"
)

// ErrInfixSyntax is the sentinel a Backend.InfixParse implementation
// should wrap when its failure is a syntax error in the infix query
// text, as opposed to some other backend failure. Translate maps the
// former to StatusBadQuerySyntax and the latter to
// StatusXapianException (§4.3 rule 8, "infix").
var ErrInfixSyntax = stderrors.New("infix query syntax error")

// Compile is the compiler's public entry point: compile(db, text) ->
// QueryTree | Error (§6). It is a pure function of its arguments: the
// only collaborator with side effects is db, and the only side effect
// the Translator itself performs through db is diagnostic logging.
func Compile(db Backend, text string) (Tree, error) {
	root, err := sexp.Parse(text)
	if err != nil {
		db.Log(err.Error())
		return nil, &Error{Status: StatusBadQuerySyntax, Message: err.Error(), Cause: err}
	}
	return translate(nil, nil, root, db)
}

// translate is the recursive descent of §4.3: translate(parent, env,
// node) -> QueryTree | Error. parent is non-nil only inside the
// subtree of a FIELD or RANGE form (§3 invariants); it is set exactly
// once, on entry into such a form, and never overwritten.
func translate(parent *Descriptor, env *sexpenv.Env, node *sexp.Node, db Backend) (Tree, error) {
	if !node.IsList {
		return translateAtom(parent, env, node, db)
	}

	if node.Empty() {
		// Rule 3: empty list.
		return MatchAll, nil
	}

	head := node.Head
	if head.IsList {
		// Rule 4: list in operation position.
		return nil, badSyntax(db, "unexpected list in operation position")
	}

	// Rule 5: saved-squery expansion.
	tree, err := maybeSavedSquery(parent, env, node, db)
	if err != errIgnored {
		return tree, err
	}

	// Rule 6: user-defined header.
	if _, ok := db.UserPrefixGet(head.Text); ok {
		return translateUserHeader(parent, env, node, db)
	}

	// Rule 7: reserved "macro" head outside a saved-squery context.
	if head.Text == "macro" {
		return nil, badSyntax(db, "macro definition not permitted here")
	}

	// Rule 8: built-in prefix match.
	desc, ok := lookupPrefix(head.Text)
	if !ok {
		// Rule 9: unknown head.
		return nil, badSyntax(db, "unknown prefix %q", head.Text)
	}
	return translateBuiltin(parent, env, desc, node, db)
}

// translateAtom implements dispatch rules 1 and 2.
func translateAtom(parent *Descriptor, env *sexpenv.Env, node *sexp.Node, db Backend) (Tree, error) {
	// Rule 1: parameter reference.
	if node.Kind == sexp.Basic && strings.HasPrefix(node.Text, ",") {
		name := node.Text[1:]
		binding, ok := sexpenv.Resolve(env, name)
		if !ok {
			return nil, badSyntax(db, "undefined parameter %q", name)
		}
		return translate(parent, binding.Defines, binding.Sexp, db)
	}

	// Rule 2: atom (non-parameter).
	if node.Kind == sexp.Basic && node.Text == "*" {
		return wildcardQuery(parent, "", db)
	}

	text := node.Text
	if parent != nil && parent.Flags.Has(FlagPathname) {
		text = strings.TrimSuffix(text, "/")
	}

	if parent != nil && parent.Flags.Has(FlagBoolean) {
		return TermTree{Term: db.Prefix(parent.Name) + text}, nil
	}

	if parent != nil {
		return singleTermQuery(db, db.Prefix(parent.Name), node.Kind, text)
	}

	// parent == nil: bare term at the root. Implicit-OR-over-field-set.
	return implicitFieldOR(node.Kind, text, db)
}

// singleTermQuery implements §4.3.b.
func singleTermQuery(db Backend, prefix string, kind sexp.AtomKind, text string) (Tree, error) {
	if kind == sexp.Basic && isSingleWord(text, db) {
		return TermTree{Term: "Z" + prefix + db.Stem(db.Lower(text))}, nil
	}
	words := db.WordIter(text)
	terms := make([]string, len(words))
	for i, w := range words {
		terms[i] = prefix + db.Lower(w)
	}
	return PhraseTree{Terms: terms}, nil
}

func isSingleWord(text string, db Backend) bool {
	words := db.WordIter(text)
	return len(words) == 1 && words[0] == text
}

// wildcardQuery implements §4.3.a.
func wildcardQuery(parent *Descriptor, match string, db Backend) (Tree, error) {
	if parent != nil && !parent.Flags.Has(FlagWildcard) {
		return nil, badSyntax(db, "%q does not support wildcard queries", parent.Name)
	}
	prefix := ""
	if parent != nil {
		prefix = db.Prefix(parent.Name)
	}
	return WildcardTree{Prefix: prefix + db.Lower(match)}, nil
}

// implicitFieldOR builds a single-term query in every FIELD-flagged
// prefix and combines them left-to-right with OR (§4.3 rule 2, final
// branch).
func implicitFieldOR(kind sexp.AtomKind, text string, db Backend) (Tree, error) {
	var operands []Tree
	for _, d := range fieldPrefixes() {
		t, err := singleTermQuery(db, db.Prefix(d.Name), kind, text)
		if err != nil {
			return nil, err
		}
		operands = append(operands, t)
	}
	return combine(OpOr, MatchNothing, operands), nil
}

// maybeSavedSquery implements dispatch rule 5. It returns errIgnored
// if the config key "squery."+head is absent or empty, signalling the
// dispatcher to fall through to rule 6.
func maybeSavedSquery(parent *Descriptor, env *sexpenv.Env, node *sexp.Node, db Backend) (Tree, error) {
	head := node.Head
	val, ok := db.ConfigGet("squery." + head.Text)
	if !ok || val == "" {
		return nil, errIgnored
	}

	saved, err := sexp.Parse(val)
	if err != nil {
		return nil, badSyntax(db, "invalid saved s-expression query: %q", val)
	}

	tree, err := maybeApplyMacro(saved, head.Next, parent, env, db)
	if err == errIgnored {
		return translate(parent, env, saved, db)
	}
	return tree, err
}

// maybeApplyMacro implements §4.3.c. candidate is the (already
// re-parsed) saved squery body; it returns errIgnored if candidate is
// not a "(macro (params…) body)" form, signalling maybeSavedSquery to
// translate candidate directly instead.
func maybeApplyMacro(candidate *sexp.Node, args *sexp.Node, parent *Descriptor, env *sexpenv.Env, db Backend) (Tree, error) {
	if !candidate.IsList || candidate.Empty() || candidate.Head.IsList || candidate.Head.Text != "macro" {
		return nil, errIgnored
	}

	params := candidate.Head.Next
	if params == nil || !params.IsList {
		return nil, badSyntax(db, "missing (possibly empty) list of arguments to macro")
	}

	body := params.Next
	if body == nil {
		return nil, badSyntax(db, "missing body of macro")
	}

	newEnv := env
	param, arg := params.Head, args
	for param != nil && arg != nil {
		if param.IsList || param.Kind != sexp.Basic {
			return nil, badSyntax(db, "macro parameters must be unquoted atoms")
		}
		// Every binding's defining environment is the caller's
		// (fixed) env, not the growing newEnv: parameters are
		// resolved call-by-name in the caller's scope (§3, §8).
		newEnv = sexpenv.Bind(newEnv, param.Text, arg, env)
		param, arg = param.Next, arg.Next
	}
	if param != nil && arg == nil {
		return nil, badSyntax(db, "too few arguments to macro")
	}
	if param == nil && arg != nil {
		return nil, badSyntax(db, "too many arguments to macro")
	}

	return translate(parent, newEnv, body, db)
}

// translateUserHeader implements dispatch rule 6.
func translateUserHeader(parent *Descriptor, env *sexpenv.Env, node *sexp.Node, db Backend) (Tree, error) {
	head := node.Head
	if parent != nil {
		return nil, badSyntax(db, "nested field: %q inside %q", head.Text, parent.Name)
	}
	userDesc := Descriptor{Name: head.Text, Flags: FlagField | FlagWildcard}
	return translateCombiner(&userDesc, env, Descriptor{Op: OpAnd, Initial: InitialMatchAll}, head.Next, db)
}

// translateBuiltin implements dispatch rule 8.
func translateBuiltin(parent *Descriptor, env *sexpenv.Env, desc Descriptor, node *sexp.Node, db Backend) (Tree, error) {
	tail := node.Head.Next

	if desc.Flags.Has(FlagField) || desc.Flags.Has(FlagRange) {
		if parent != nil {
			return nil, badSyntax(db, "nested field: %q inside %q", desc.Name, parent.Name)
		}
		parent = &desc
	}

	if desc.Flags.Has(FlagOrphan) && parent != nil {
		return nil, badSyntax(db, "%q not supported inside %q", desc.Name, parent.Name)
	}

	if desc.Flags.Has(FlagSingle) {
		if tail == nil || tail.Next != nil || tail.IsList {
			return nil, badSyntax(db, "%q expects single atom as argument", desc.Name)
		}
	}

	switch {
	case desc.Flags.Has(FlagRange):
		return translateRange(desc, tail, db)
	case desc.Name == "infix":
		return translateInfix(tail, db)
	case desc.Name == "query":
		return translateNamedQuery(tail, db)
	case desc.Op == OpWildcard:
		return translateStartsWith(parent, env, desc, tail, db)
	case desc.Flags.Has(FlagDoRegex):
		return translateRegex(parent, env, desc, tail, db)
	case desc.Flags.Has(FlagDoExpand):
		return translateExpand(parent, desc, tail, db)
	default:
		return translateCombiner(parent, env, desc, tail, db)
	}
}

// translateCombiner folds tail left-to-right with desc.Op, starting
// from desc.Initial's seed. Every child is compiled, even once a
// prior subquery is already MatchNothing/MatchAll: the fold is
// associative, not short-circuited (§4.3 rule 8).
func translateCombiner(parent *Descriptor, env *sexpenv.Env, desc Descriptor, tail *sexp.Node, db Backend) (Tree, error) {
	var operands []Tree
	for c := tail; c != nil; c = c.Next {
		t, err := translate(parent, env, c, db)
		if err != nil {
			return nil, err
		}
		operands = append(operands, t)
	}
	return combine(desc.Op, desc.Initial.Seed(), operands), nil
}

// translateRange implements §4.3.d.
func translateRange(desc Descriptor, tail *sexp.Node, db Backend) (Tree, error) {
	if tail == nil {
		return MatchAll, nil
	}

	elems := siblings(tail)
	if len(elems) > 2 {
		return nil, badSyntax(db, "%q expects maximum of two arguments", desc.Name)
	}
	for _, e := range elems {
		if e.IsList {
			return nil, badSyntax(db, "expected atom as argument of %q", desc.Name)
		}
	}

	from := elems[0].Text
	if from == "*" {
		from = ""
	}
	to := from
	if len(elems) == 2 {
		to = elems[1].Text
		if to == "*" {
			to = ""
		}
	}

	switch desc.Name {
	case "date":
		t, err := db.DateRangeToQuery(from, to)
		if err != nil {
			return nil, xapianException(db, err, "date range query failed")
		}
		return t, nil
	case "lastmod":
		t, err := db.LastmodRangeToQuery(from, to)
		if err != nil {
			return nil, xapianException(db, err, "lastmod range query failed")
		}
		return t, nil
	default:
		return nil, badSyntax(db, "unimplemented range prefix: %q", desc.Name)
	}
}

// translateInfix hands the single argument to db.InfixParse. A failure
// wrapping ErrInfixSyntax becomes BadQuerySyntax; any other failure
// becomes XapianException. Every such failure is returned to the
// caller: there is no one-shot latch that turns a repeated backend
// exception into success.
func translateInfix(tail *sexp.Node, db Backend) (Tree, error) {
	t, err := db.InfixParse(tail.Text)
	if err != nil {
		if stderrors.Is(err, ErrInfixSyntax) {
			return nil, badSyntax(db, "syntax error in infix query: %q", tail.Text)
		}
		return nil, xapianException(db, err, "exception parsing infix query: %q", tail.Text)
	}
	return t, nil
}

func translateNamedQuery(tail *sexp.Node, db Backend) (Tree, error) {
	t, err := db.NamedQuery(tail.Text)
	if err != nil {
		return nil, xapianException(db, err, "named query %q failed", tail.Text)
	}
	return t, nil
}

func translateStartsWith(parent *Descriptor, env *sexpenv.Env, desc Descriptor, tail *sexp.Node, db Backend) (Tree, error) {
	atom, err := expandToAtom(env, tail, desc.Name, db)
	if err != nil {
		return nil, err
	}
	return wildcardQuery(parent, atom.Text, db)
}

func translateRegex(parent *Descriptor, env *sexpenv.Env, desc Descriptor, tail *sexp.Node, db Backend) (Tree, error) {
	if parent == nil {
		return nil, badSyntax(db, "illegal %q outside field", desc.Name)
	}
	if !parent.Flags.Has(FlagRegex) {
		return nil, badSyntax(db, "%q not supported in field %q", desc.Name, parent.Name)
	}
	atom, err := expandToAtom(env, tail, desc.Name, db)
	if err != nil {
		return nil, err
	}
	t, err := db.RegexToQuery(-1, parent.Name, atom.Text)
	if err != nil {
		return nil, xapianException(db, err, "regex query failed for field %q", parent.Name)
	}
	return t, nil
}

func translateExpand(parent *Descriptor, desc Descriptor, tail *sexp.Node, db Backend) (Tree, error) {
	if parent == nil {
		return nil, badSyntax(db, "%q unsupported outside a field", desc.Name)
	}
	if !parent.Flags.Has(FlagExpand) {
		return nil, badSyntax(db, "%q unsupported inside %q", desc.Name, parent.Name)
	}
	// Children are translated independently, as if at top level:
	// fresh nil parent and environment, matching the original's
	// "_sexp_combine_query(notmuch, NULL, NULL, ...)" call.
	sub, err := translateCombiner(nil, nil, desc, tail, db)
	if err != nil {
		return nil, err
	}
	result, err := db.QueryExpand(parent.Name, sub)
	if err != nil {
		return nil, xapianException(db, err, "error expanding query for field %q", parent.Name)
	}
	return result, nil
}

// expandToAtom implements the parameter-reference expansion chain
// shared by starts-with and regex/rx: it resolves ,param references
// until it reaches a concrete atom.
func expandToAtom(env *sexpenv.Env, node *sexp.Node, forName string, db Backend) (*sexp.Node, error) {
	for !node.IsList && node.Kind == sexp.Basic && strings.HasPrefix(node.Text, ",") {
		name := node.Text[1:]
		binding, ok := sexpenv.Resolve(env, name)
		if !ok {
			return nil, badSyntax(db, "undefined parameter %q", name)
		}
		node, env = binding.Sexp, binding.Defines
	}
	if node.IsList {
		return nil, badSyntax(db, "%q expects single atom as argument", forName)
	}
	return node, nil
}

func siblings(n *sexp.Node) []*sexp.Node {
	var out []*sexp.Node
	for c := n; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}
