// SPDX-FileCopyrightText: 2025 The RelayKit Authors
// SPDX-License-Identifier: MIT

package stun

// Attributes for connectivity checks, defined by the ICE usage of STUN.
//
// RFC 5245 Section 19.1.

const (
	prioritySize   = 4 // 32 bit
	tiebreakerSize = 8 // 64 bit
)

// Priority represents PRIORITY attribute. The value is the candidate
// priority the peer would assign to the candidate this check may
// discover.
type Priority uint32

// AddTo adds PRIORITY attribute to message.
func (p Priority) AddTo(m *Message) error {
	v := make([]byte, prioritySize)
	bin.PutUint32(v, uint32(p))
	m.Add(AttrPriority, v)

	return nil
}

// GetFrom decodes PRIORITY attribute from message.
func (p *Priority) GetFrom(m *Message) error {
	v, err := m.Get(AttrPriority)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrPriority, len(v), prioritySize); err != nil {
		return err
	}
	*p = Priority(bin.Uint32(v))

	return nil
}

// UseCandidateAttr represents USE-CANDIDATE attribute. It has no
// content, its presence indicates that the controlling agent nominates
// the candidate pair.
type UseCandidateAttr struct{}

// UseCandidate is shorthand for UseCandidateAttr.
var UseCandidate UseCandidateAttr //nolint:gochecknoglobals

// AddTo adds USE-CANDIDATE attribute to message.
func (UseCandidateAttr) AddTo(m *Message) error {
	m.Add(AttrUseCandidate, nil)

	return nil
}

// IsSet returns true if USE-CANDIDATE attribute is set.
func (UseCandidateAttr) IsSet(m *Message) bool {
	_, err := m.Get(AttrUseCandidate)

	return err == nil
}

// ICEControlled represents ICE-CONTROLLED attribute. The value is the
// agent's tiebreaker for role conflict resolution.
type ICEControlled uint64

// AddTo adds ICE-CONTROLLED attribute to message.
func (c ICEControlled) AddTo(m *Message) error {
	v := make([]byte, tiebreakerSize)
	bin.PutUint64(v, uint64(c))
	m.Add(AttrICEControlled, v)

	return nil
}

// GetFrom decodes ICE-CONTROLLED attribute from message.
func (c *ICEControlled) GetFrom(m *Message) error {
	v, err := m.Get(AttrICEControlled)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrICEControlled, len(v), tiebreakerSize); err != nil {
		return err
	}
	*c = ICEControlled(bin.Uint64(v))

	return nil
}

// ICEControlling represents ICE-CONTROLLING attribute. The value is the
// agent's tiebreaker for role conflict resolution.
type ICEControlling uint64

// AddTo adds ICE-CONTROLLING attribute to message.
func (c ICEControlling) AddTo(m *Message) error {
	v := make([]byte, tiebreakerSize)
	bin.PutUint64(v, uint64(c))
	m.Add(AttrICEControlling, v)

	return nil
}

// GetFrom decodes ICE-CONTROLLING attribute from message.
func (c *ICEControlling) GetFrom(m *Message) error {
	v, err := m.Get(AttrICEControlling)
	if err != nil {
		return err
	}
	if err = CheckSize(AttrICEControlling, len(v), tiebreakerSize); err != nil {
		return err
	}
	*c = ICEControlling(bin.Uint64(v))

	return nil
}
