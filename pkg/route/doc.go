// Package route compiles command-line route patterns and resolves
// tokenized invocations against them.
//
// The package provides:
//   - A lexer and parser for the pattern grammar, with typed errors
//     carrying byte offsets
//   - Immutable CompiledRoute values with precomputed specificity
//   - A matcher that binds positional parameters, options, and
//     catch-alls from an invocation's tokens
//   - A RouteSet resolver that selects the most specific exact match
//
// # Pattern grammar
//
// Patterns are whitespace-separated segments:
//
//	deploy {env} --force,-f {file?}
//
//	greet {name}               literal + required parameter
//	round {value:double}       typed parameter
//	exec {*args}               catch-all (binds remaining tokens)
//	--force,-f                 flag with long and short forms
//	--mode {mode}              option taking a value (required)
//	--env {e}*                 repeated option, collected in order
//	--verbose?                 optional option
//	--                         end-of-options separator
//
// A brace group after an option is the option's value spec, whether or
// not whitespace separates them: in the first example {file?} is the
// optional value of --force,-f. A catch-all group is the exception; it
// is always positional.
//
// Options are required unless declared with '?'. A route whose
// required option is absent from the input is rejected outright.
//
// # Specificity
//
// Each segment contributes a fixed weight (see the Weight* constants);
// a route's specificity is the sum. Among viable exact matches the
// resolver picks the highest specificity; exact ties go to the
// first-registered route.
//
// # Lifecycle
//
// Compilation happens once per pattern, typically at start-up:
//
//	set := route.NewRouteSet()
//	set.Add("deploy {env} --force,-f")
//	set.Add("exec {*args}")
//	set.Freeze()
//
//	res, ok := set.Resolve(route.NewInput(os.Args[1:]))
//	if ok {
//	    // res.Values["env"], res.Lists["args"], ...
//	}
//
// A frozen set is read-only; Resolve is a synchronous, CPU-bound
// operation safe for any number of concurrent callers. Registration
// must finish before Freeze — the build phase is single-threaded by
// contract.
package route
