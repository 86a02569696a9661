package network

import "github.com/sasha-s/go-deadlock"

// nonceTracker hands out account nonces for transactions sent faster than
// the proxy reports them as executed
type nonceTracker struct {
	mut  deadlock.Mutex
	next map[string]uint64
}

func newNonceTracker() *nonceTracker {
	return &nonceTracker{next: make(map[string]uint64)}
}

// take returns the nonce to use for address given the nonce the network
// reports, and reserves it
func (nt *nonceTracker) take(address string, networkNonce uint64) uint64 {
	nt.mut.Lock()
	defer nt.mut.Unlock()

	nonce := networkNonce
	if next, ok := nt.next[address]; ok && next > nonce {
		nonce = next
	}
	nt.next[address] = nonce + 1

	return nonce
}

// release gives back a nonce whose transaction was never sent
func (nt *nonceTracker) release(address string, nonce uint64) {
	nt.mut.Lock()
	defer nt.mut.Unlock()

	if nt.next[address] == nonce+1 {
		nt.next[address] = nonce
	}
}
