package fragment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

func TestSequenceKey(t *testing.T) {
	tests := []struct {
		name    string
		want    uint64
		wantErr bool
	}{
		{"1400.schema.foo.sql", 1400, false},
		{"0986.data.bar.sql", 986, false},
		{"7.function.sql", 7, false},
		{"1312-no-dot.sql", 1312, false},
		{"XXXX.schema.pending.sql", 0, true},
		{"schema.1400.sql", 0, true},
		{".sql", 0, true},
		{"99999999999999999999999.sql", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SequenceKey(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, mkdbupgrade.ErrMalformedFragmentName))
				assert.Contains(t, err.Error(), tt.name)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortBySequence_Numeric(t *testing.T) {
	fragments := []mkdbupgrade.Fragment{
		{Name: "1500.sql", SequenceKey: 1500},
		{Name: "987.sql", SequenceKey: 987},
		{Name: "1312.sql", SequenceKey: 1312},
	}
	SortBySequence(fragments)

	assert.Equal(t, []uint64{987, 1312, 1500}, []uint64{
		fragments[0].SequenceKey, fragments[1].SequenceKey, fragments[2].SequenceKey,
	})
}
