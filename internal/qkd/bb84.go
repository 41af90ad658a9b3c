// Package qkd implements a single-machine simulation of the BB84 quantum key
// distribution protocol: a sender encodes random bits in random bases, the
// qubits pass through a composable channel (optionally eavesdropped and
// noisy), and a receiver measures them in its own random bases.
package qkd

import (
	"fmt"

	"github.com/sajeeb007/qkd-bb84-sim/internal/qkd/quantum"
)

// Protocol simulates one BB84 exchange between a sender and a receiver over a
// quantum link.
type Protocol struct {
	qubitCount int
	link       quantum.Link
	rs         *quantum.RandomSource

	// test hooks; drawn from rs when nil
	senderBitFunc     func(i int) quantum.Bit
	senderBasisFunc   func(i int) quantum.Basis
	receiverBasisFunc func(i int) quantum.Basis
}

// NewProtocol creates a protocol run over qubitCount rounds. A nil link models
// a perfect channel.
func NewProtocol(qubitCount int, link quantum.Link, rs *quantum.RandomSource) (*Protocol, error) {
	if qubitCount <= 0 {
		return nil, fmt.Errorf("qubit count must be positive, got %d", qubitCount)
	}
	if rs == nil {
		return nil, fmt.Errorf("must provide a random source")
	}
	return &Protocol{
		qubitCount: qubitCount,
		link:       link,
		rs:         rs,
	}, nil
}

// Exchange records both parties' per-qubit choices and outcomes for one
// protocol run, before sifting. All four sequences have identical length.
type Exchange struct {
	SenderBits    []quantum.Bit
	SenderBases   []quantum.Basis
	ReceiverBases []quantum.Basis
	Outcomes      []quantum.Bit
}

// Run executes the per-qubit pipeline. Randomness is consumed in a fixed
// order per qubit, across qubits in index order: sender bit, sender basis,
// link draws (eavesdropper basis and measurement, then channel noise), the
// receiver basis, and finally the receiver's measurement draw. Reproducing a
// run requires replaying draws in exactly this order.
func (p *Protocol) Run() *Exchange {
	ex := &Exchange{
		SenderBits:    make([]quantum.Bit, p.qubitCount),
		SenderBases:   make([]quantum.Basis, p.qubitCount),
		ReceiverBases: make([]quantum.Basis, p.qubitCount),
		Outcomes:      make([]quantum.Bit, p.qubitCount),
	}

	for i := 0; i < p.qubitCount; i++ {
		bit := p.senderBit(i)
		basis := p.senderBasis(i)

		q := quantum.PrepareQubit(bit, basis)
		if p.link != nil {
			q = p.link.Transmit(q)
		}

		rBasis := p.receiverBasis(i)
		outcome := quantum.Measure(q, rBasis, p.rs)

		ex.SenderBits[i] = bit
		ex.SenderBases[i] = basis
		ex.ReceiverBases[i] = rBasis
		ex.Outcomes[i] = outcome
	}

	return ex
}

func (p *Protocol) senderBit(i int) quantum.Bit {
	if p.senderBitFunc != nil {
		return p.senderBitFunc(i)
	}
	return p.rs.Bit()
}

func (p *Protocol) senderBasis(i int) quantum.Basis {
	if p.senderBasisFunc != nil {
		return p.senderBasisFunc(i)
	}
	return p.rs.Basis()
}

func (p *Protocol) receiverBasis(i int) quantum.Basis {
	if p.receiverBasisFunc != nil {
		return p.receiverBasisFunc(i)
	}
	return p.rs.Basis()
}
