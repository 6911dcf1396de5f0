package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		err   error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing session", &Ports{}, ErrMissingSession},
		{"complete", NewPorts(newFakeSession()), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewPorts(t *testing.T) {
	session := newFakeSession()

	ports := NewPorts(session)

	assert.Equal(t, session, ports.Session)
	assert.Empty(t, ports.StartDir)
}
