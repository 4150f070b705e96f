// Package generators builds graph definitions for well-known generator
// families: permutation puzzles, sorting networks and small matrix groups.
//
// Every constructor validates its parameters and returns a
// *cayley.GraphDefinition whose central state is the identity.
package generators
