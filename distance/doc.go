// Package distance provides the vector similarity functions used to compare
// Fixed Dimensional Encodings and the points they are built from.
//
// The dot product of a query FDE and a document FDE is the quantity that
// approximates Chamfer similarity, so Dot is the score to use when FDEs are
// searched.
//
// # Usage
//
//	score := distance.Dot(queryFDE, docFDE)
//	dist := distance.SquaredL2(a, b)
//	cos, _ := distance.Cosine(a, b)
package distance
