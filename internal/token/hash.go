package token

import "github.com/segmentio/fasthash/fnv1a"

func hashKind(k Kind) uint64 {
	return fnv1a.AddUint64(fnv1a.Init64, uint64(k))
}

func hashString(k Kind, s string) uint64 {
	return fnv1a.AddString64(hashKind(k), s)
}

// hashOrdered folds the hashes of ts in order.
func hashOrdered(k Kind, ts ...Token) uint64 {
	h := hashKind(k)
	for _, t := range ts {
		h = fnv1a.AddUint64(h, t.Hash())
	}
	return h
}

// hashEntry combines a key and value hash. Map hashes sum these so that
// insertion order does not matter.
func hashEntry(e Entry) uint64 {
	h := fnv1a.AddUint64(fnv1a.Init64, e.Key.Hash())
	return fnv1a.AddUint64(h, e.Value.Hash())
}

func hashSized(k Kind, n int) uint64 {
	return fnv1a.AddUint64(hashKind(k), uint64(n))
}
