package transcript

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"
)

func TestEnqueueDequeueMerkleRoot(t *testing.T) {
	root := hash.HashVarlen([]field.Element{field.New(1), field.New(2)})

	prover := New()
	prover.EnqueueMerkleRoot(root)

	verifier := FromItems(prover.Items)
	got, err := verifier.DequeueMerkleRoot()
	if err != nil {
		t.Fatalf("DequeueMerkleRoot: %v", err)
	}
	for i := 0; i < hash.DigestLen; i++ {
		if !got[i].Equal(root[i]) {
			t.Fatalf("root element %d mismatch", i)
		}
	}
}

func TestProverVerifierChallengesMatch(t *testing.T) {
	root := hash.HashVarlen([]field.Element{field.New(3)})

	prover := New()
	prover.EnqueueMerkleRoot(root)
	proverAlpha, err := prover.SampleChallenge()
	if err != nil {
		t.Fatalf("prover SampleChallenge: %v", err)
	}

	verifier := FromItems(prover.Items)
	if _, err := verifier.DequeueMerkleRoot(); err != nil {
		t.Fatalf("replay: %v", err)
	}
	verifierAlpha, err := verifier.SampleChallenge()
	if err != nil {
		t.Fatalf("verifier SampleChallenge: %v", err)
	}

	if !proverAlpha.Equal(verifierAlpha) {
		t.Fatal("prover and verifier derived different challenges from the same transcript prefix")
	}
}

func TestCodewordRoundTrip(t *testing.T) {
	codeword := []xfield.XFieldElement{xfield.Lift(field.New(1)), xfield.Lift(field.New(2))}

	prover := New()
	prover.EnqueueCodeword(codeword)

	verifier := FromItems(prover.Items)
	got, err := verifier.DequeueCodeword()
	if err != nil {
		t.Fatalf("DequeueCodeword: %v", err)
	}
	if len(got) != len(codeword) {
		t.Fatalf("got %d elements, want %d", len(got), len(codeword))
	}
	for i := range codeword {
		if !got[i].Equal(codeword[i]) {
			t.Fatalf("element %d mismatch", i)
		}
	}
}

func TestDequeueExhausted(t *testing.T) {
	verifier := New()
	if _, err := verifier.DequeueMerkleRoot(); err == nil {
		t.Fatal("expected error dequeuing from an empty stream")
	}
}
