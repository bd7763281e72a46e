package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceParams() Params {
	return FromMap(map[string]string{"k1": "v1", "k2": "v2", "k3": "v3"})
}

func TestSign_ReferenceVector(t *testing.T) {
	secret := []byte("012345")

	assert.Equal(t, "8802a919bf62f04298f2ae073df88c75f6f6ece3", SignHex(referenceParams(), secret))
	assert.Equal(t, "iAKpGb9i8EKY8q4HPfiMdfb27OM=", Sign(referenceParams(), secret))
}

func TestSign_EmptyParams(t *testing.T) {
	secret := []byte("012345")

	assert.Equal(t, "41bb8b435815efae4cae484e89dabb61ffebe7eb", SignHex(Params{}, secret))
	assert.Equal(t, "QbuLQ1gV765MrkhOidq7Yf/r5+s=", Sign(Params{}, secret))
	assert.Equal(t, Sign(nil, secret), Sign(Params{}, secret))
}

func TestSign_ExcludesExistingSign(t *testing.T) {
	secret := []byte("012345")
	p := referenceParams()
	p.Set(KeySign, "bogus")

	assert.Equal(t, "iAKpGb9i8EKY8q4HPfiMdfb27OM=", Sign(p, secret))
	// The caller's set is left alone.
	assert.Equal(t, "bogus", p[KeySign].String())
}

func TestSign_DependsOnSecret(t *testing.T) {
	assert.NotEqual(t, Sign(referenceParams(), []byte("012345")), Sign(referenceParams(), []byte("012346")))
}

func TestSign_BinarySecret(t *testing.T) {
	secret := []byte{0x00, 0x80, 0xfe, 0xff}
	s1 := Sign(referenceParams(), secret)
	s2 := Sign(referenceParams(), append([]byte(nil), secret...))
	assert.Equal(t, s1, s2)
}

func TestVerify(t *testing.T) {
	secret := []byte("012345")
	p := referenceParams()

	signature := Sign(p, secret)
	require.True(t, Verify(p, secret, signature))

	p.Set(KeySign, signature)
	assert.True(t, Verify(p, secret, signature))
	assert.False(t, Verify(p, []byte("other"), signature))
	assert.False(t, Verify(p, secret, "not base64!"))
}
