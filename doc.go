// Package vanigo is a concurrent best-candidate search engine with a vanity
// address search built in.
//
// Many workers derive candidates in parallel, filter them against the
// currently published best, and forward apparent improvements over a bounded
// channel to a single arbiter, which re-validates and commits them, and stops
// the search once the acceptance predicate holds. The engine package holds the
// coordination core; this package wires it to the vanity address domain,
// structured logging, metrics and optional journaling of results.
//
// # Quick start
//
//	v, err := vanigo.Vanity("ab").Workers(8).Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	found, err := v.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(found) // address -> hex seed
//
// Custom searches over any candidate type plug in their own generator,
// comparator and acceptor via New.
package vanigo
