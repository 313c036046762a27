/*
Package pegdef converts textual grammar description to grammar.Grammar structure.

Grammar is described in a PEG dialect. Self-definition of this dialect is:

	# first rule is the root one
	Grammar    <- extern* definition+ ;
	extern     <- '%extern' name+ ';' ;
	definition <- name '<-' expression ';' ;
	expression <- sequence ('/' sequence)* ;
	sequence   <- item* ;
	item       <- prefix? (binding / autobind / suffixed) ;
	prefix     <- [&!] ;
	binding    <- name ':' suffixed ;
	autobind   <- '~' name suffix? ;
	suffixed   <- primary suffix? ;
	suffix     <- [?*+] ;
	primary    <- '@'? name / '(' expression ')' / literal / dynamic
	            / class / '.' / code ;
	literal    <- ['] raw-chars ['] 'i'? / ["] raw-chars ["] 'i'? ;
	dynamic    <- '`' cel-expression '`' ;
	class      <- '[' class-items ']' ;
	code       <- '{' cel-expression '}' ;

Description must be a valid UTF-8 text. Line breaks are insignificant.
Description may contain line comments starting with # and ending with line feed.

A name is a sequence of letters, digits, and underscores starting with a letter
or underscore, optionally qualified with dots (Module.name). Names are
case-sensitive. A call to a simple name refers to the rule of that name, or to
an external matcher declared with %extern. A qualified name always refers to an
external matcher.

The %extern directive imports external combinators (a spacing skipper, a
position tracker, an identifier lexer, and the like) by name; the matchers
themselves are supplied to parser.New. All %extern directives must precede the
first rule definition.

Each rule must be defined exactly once; every rule except the root must be
reachable from the root. Calls may refer to rules defined later, recursion
(direct or mutual) is permitted. Left recursion is not detected and will not
terminate; keeping rules free of it is the grammar author's responsibility.

String literals use single or double quotes. A trailing i after the closing
quote makes the literal match ignoring case. Escapes \' \" \\ \n \r \t \{ \}
\[ \] \- denote the respective characters; in any other escape pair the
backslash is dropped. An unescaped curly brace inside a literal is a
compile-time error: brace-delimited content belongs to embedded expressions,
literal braces must be written \{ and \}.

A dynamic literal is a CEL expression between backquotes; it is evaluated
against the names bound so far each time the item is tried, and its string
result is matched like a literal.

Character classes list single characters and lo-hi ranges, e.g. [_a-zA-Z].
Escapes \[ \] \- \\ \n \r \t are recognized; a dash first or last in the class
is literal. The dot primary matches any single character.

An item may be given a name visible to the sequence's action: name:primary.
The autobind form ~Rule (or ~Module.rule) is sugar for rule:Rule with the
binding name derived from the call target by stripping the module qualifier;
it is permitted only on identifier calls. A call prefixed with @ binds the
span-decorated result {value, start, end} instead of the bare value.

Embedded code {expr} is a CEL expression over the names bound so far; as an
item it consumes no input and produces the expression value. When the last
item of a sequence is a bare code block, it is the sequence's action: its
value becomes the result of the sequence.
*/
package pegdef
