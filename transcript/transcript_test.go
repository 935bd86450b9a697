package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-snarkpack/aggregate/curve"
)

func TestChallengeScalarIsDeterministic(t *testing.T) {
	build := func() curve.Scalar {
		tr := New([]byte("domain"))
		tr.AppendBytes("a", []byte("hello"))
		tr.AppendScalar("b", curve.ScalarFromUint64(42))
		return tr.ChallengeScalar("c")
	}

	s1 := build()
	s2 := build()
	require.True(t, s1.Equal(&s2))
}

func TestChallengeScalarDependsOnDomainTag(t *testing.T) {
	tr1 := New([]byte("domain-a"))
	tr1.AppendBytes("a", []byte("hello"))
	s1 := tr1.ChallengeScalar("c")

	tr2 := New([]byte("domain-b"))
	tr2.AppendBytes("a", []byte("hello"))
	s2 := tr2.ChallengeScalar("c")

	require.False(t, s1.Equal(&s2))
}

func TestChallengeScalarDependsOnAppendedItems(t *testing.T) {
	tr1 := New([]byte("domain"))
	tr1.AppendBytes("a", []byte("hello"))
	s1 := tr1.ChallengeScalar("c")

	tr2 := New([]byte("domain"))
	tr2.AppendBytes("a", []byte("goodbye"))
	s2 := tr2.ChallengeScalar("c")

	require.False(t, s1.Equal(&s2))
}

func TestChallengeScalarDependsOnOrder(t *testing.T) {
	tr1 := New([]byte("domain"))
	tr1.AppendBytes("a", []byte("x"))
	tr1.AppendBytes("b", []byte("y"))
	s1 := tr1.ChallengeScalar("c")

	tr2 := New([]byte("domain"))
	tr2.AppendBytes("b", []byte("y"))
	tr2.AppendBytes("a", []byte("x"))
	s2 := tr2.ChallengeScalar("c")

	require.False(t, s1.Equal(&s2))
}

func TestSequentialChallengesDiffer(t *testing.T) {
	tr := New([]byte("domain"))
	tr.AppendBytes("a", []byte("hello"))
	first := tr.ChallengeScalar("round-1")
	second := tr.ChallengeScalar("round-2")
	require.False(t, first.Equal(&second))
}

func TestChallengeScalarNeverZero(t *testing.T) {
	tr := New([]byte("domain"))
	for i := 0; i < 64; i++ {
		s := tr.ChallengeScalar("repeat")
		require.False(t, s.IsZero())
	}
}

func TestAppendG1G2GTRoundTripIntoDifferentChallenges(t *testing.T) {
	g := curve.G1Generator()
	h := curve.G2Generator()
	one := curve.GTOne()

	tr1 := New([]byte("domain"))
	tr1.AppendG1("p", g)
	s1 := tr1.ChallengeScalar("c")

	tr2 := New([]byte("domain"))
	tr2.AppendG2("p", h)
	s2 := tr2.ChallengeScalar("c")

	tr3 := New([]byte("domain"))
	tr3.AppendGT("p", one)
	s3 := tr3.ChallengeScalar("c")

	require.False(t, s1.Equal(&s2))
	require.False(t, s1.Equal(&s3))
	require.False(t, s2.Equal(&s3))
}
