// Package sanitize cleans user-authored markup before it is written into an
// editable block.
//
// Four profiles exist: Inline for single-line formatted fields, Rich for
// paragraphs with lists and color, Brand for header and footer blocks (Rich
// plus table layout and images), and Plain for strict text fields. The tree
// profiles parse the markup into a small Node tree, normalise lists, and
// rewrite the tree against the profile allowlist, repeating until the output
// is stable. Every profile is idempotent: sanitizing clean output returns it
// unchanged.
//
// Plain removes tags rather than showing them as literal text: "<b>Hi</b>"
// becomes "Hi", while text characters such as "&" and "<" are escaped. Line
// breaks become <br>.
package sanitize
