// Package heap implements the priority index: a binary max-heap over vertex
// neighborhood weights whose elements know their own array position.
//
// # Handles
//
// Every element is addressed by the fixed slot it received in [Build]. A
// slot-indexed position table is updated on every swap, so [MaxHeap.IncreaseKey],
// [MaxHeap.DecreaseKey] and [MaxHeap.Remove] go straight to the element instead
// of searching for it.
//
// # Costs
//
//   - [Build]: O(n)
//   - [MaxHeap.Peek]: O(1)
//   - [MaxHeap.IncreaseKey], [MaxHeap.DecreaseKey], [MaxHeap.Remove]: O(log n)
//
// A key only grows in IncreaseKey, so it repairs upward only; DecreaseKey
// repairs downward only. Remove swaps the target with the last element and
// runs both repairs at the vacated position.
//
// # Verification
//
// [MaxHeap.Verify] walks the array and checks the heap order and the position
// table. It is used by tests and by the graph's invariant check.
package heap
