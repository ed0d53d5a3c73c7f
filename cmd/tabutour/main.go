// Command tabutour computes near-optimal closed tours over a set of
// cities with Tabu Search. It ships with a built-in Moroccan city set,
// loads alternative sets from xlsx spreadsheets, and can run either as a
// one-shot CLI (solve) or as a small HTTP service (serve).
package main

func main() {
	Execute()
}
