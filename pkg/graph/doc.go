// Package graph holds the node-weighted, undirected graph that the parallel
// summation walks, and the loader for its text file format.
//
// The file format is a sequence of whitespace separated integers:
//
//	N M
//	w0 w1 ... w(N-1)
//	a0 b0
//	...
//	a(M-1) b(M-1)
//
// N is the node count, M the edge count, wi the weight of node i and each
// pair (a, b) an undirected edge. Files whose name ends in ".sz" are read
// as snappy framed streams.
package graph
