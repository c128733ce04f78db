// Package program replays the demonstration loop: it walks an index range,
// skips even indices, stops at a break index and prints the Fibonacci value of
// every remaining index with a "{}" placeholder format, then prints "Done".
//
// With the default plan the output is
//
//	1
//	2
//	5
//	13
//	34
//	89
//	233
//	610
//	Done
package program
