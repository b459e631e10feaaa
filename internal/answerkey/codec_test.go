package answerkey

import (
	"errors"
	"testing"

	apperrors "github.com/cheruab/dreamacademyScM-sub002/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterToIndex(t *testing.T) {
	tests := []struct {
		letter  string
		want    int
		wantErr bool
	}{
		{letter: "A", want: 0},
		{letter: "c", want: 2},
		{letter: "E", want: 4},
		{letter: "z", want: 25},
		{letter: "", wantErr: true},
		{letter: "AB", wantErr: true},
		{letter: "1", wantErr: true},
		{letter: "é", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.letter, func(t *testing.T) {
			got, err := LetterToIndex(tc.letter)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrInvalidAnswerToken))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIndexToLetter_OutOfRange(t *testing.T) {
	_, err := IndexToLetter(-1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAnswerToken)

	_, err = IndexToLetter(26)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAnswerToken)
}

func TestCodecSymmetry(t *testing.T) {
	for _, l := range []string{"A", "B", "C", "D", "E"} {
		i, err := LetterToIndex(l)
		require.NoError(t, err)
		back, err := IndexToLetter(i)
		require.NoError(t, err)
		assert.Equal(t, l, back)
	}

	for i := 0; i <= 4; i++ {
		l, err := IndexToLetter(i)
		require.NoError(t, err)
		back, err := LetterToIndex(l)
		require.NoError(t, err)
		assert.Equal(t, i, back)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    int
		wantErr bool
	}{
		{name: "upper letter", token: "C", want: 2},
		{name: "lower letter", token: "b", want: 1},
		{name: "numeric index", token: "2", want: 2},
		{name: "padded numeric", token: " 3 ", want: 3},
		{name: "multi digit passes through", token: "12", want: 12},
		{name: "word", token: "yes", wantErr: true},
		{name: "empty", token: "", wantErr: true},
		{name: "float", token: "1.5", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.token)
			if tc.wantErr {
				var tokenErr *apperrors.InvalidAnswerTokenError
				require.ErrorAs(t, err, &tokenErr)
				assert.Equal(t, tc.token, tokenErr.Token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_LetterAndIndexAgree(t *testing.T) {
	fromLetter, err := Normalize("C")
	require.NoError(t, err)
	fromIndex, err := Normalize("2")
	require.NoError(t, err)

	assert.Equal(t, 2, fromLetter)
	assert.Equal(t, fromLetter, fromIndex)
	assert.True(t, Equivalent("C", "2"))
	assert.False(t, Equivalent("C", "x1"))
}
