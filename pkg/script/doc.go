// Package script replays operation sequences against a graph and checks
// their outcomes.
//
// # Operations
//
// A script is a list of [Op] values. Each names one graph call and may carry
// an expectation:
//
//	add 7 5 => true       AddEdge(7, 5) must return true
//	delete 10 => false    DeleteNode(10) must return false
//	weight 9 => 4         NeighborhoodWeight(9) must be 4 (-1 when absent)
//	max => 7              the maximum neighborhood weight must be 7
//	max => none           the graph must be empty
//	nodes => 2            NumNodes
//	edges => 0            NumEdges
//
// The same operations can be written as JSON or TOML; see [Parse].
//
// # Running
//
// [Runner.Run] applies the operations in order and records an [Outcome] for
// each. Failed expectations do not stop the run unless FailFast is set;
// the run returns an EXPECTATION_FAILED error at the end. With Verify set,
// the graph's invariants are recomputed after every operation and the first
// violation aborts the run. Cancellation is checked between operations.
package script
