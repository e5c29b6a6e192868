package bugfix

import (
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"pgregory.net/rapid"

	"github.com/masmgr/lltc4j-export/internal/smartshark"
)

// --- Generators ---

func genLabelValue() *rapid.Generator[any] {
	return rapid.OneOf(
		rapid.Map(rapid.Bool(), func(b bool) any { return b }),
		rapid.Map(rapid.Int32Range(-2, 2), func(i int32) any { return i }),
		rapid.Map(rapid.StringN(0, 3, -1), func(s string) any { return s }),
		rapid.Just[any](nil),
	)
}

func genCommit() *rapid.Generator[smartshark.Commit] {
	return rapid.Custom(func(t *rapid.T) smartshark.Commit {
		nParents := rapid.IntRange(0, 3).Draw(t, "parents")
		parents := make([]string, nParents)
		for i := range parents {
			parents[i] = fmt.Sprintf("p%d", i)
		}

		var labels bson.M
		if rapid.Bool().Draw(t, "labelled") {
			labels = bson.M{}
			if rapid.Bool().Draw(t, "hasValidated") {
				labels[DefaultLabel] = genLabelValue().Draw(t, "validated")
			}
			if rapid.Bool().Draw(t, "hasOther") {
				labels["adjustedszz_bugfix"] = genLabelValue().Draw(t, "other")
			}
		}

		return smartshark.Commit{
			RevisionHash: rapid.StringMatching(`[0-9a-f]{40}`).Draw(t, "hash"),
			Parents:      parents,
			Labels:       labels,
		}
	})
}

// --- Property Tests ---

func TestQualifies_Rapid_ImpliesSingleParentAndTruthyLabel(t *testing.T) {
	d := NewDetector([]string{DefaultLabel}, 1)

	rapid.Check(t, func(t *rapid.T) {
		c := genCommit().Draw(t, "commit")
		if !d.Qualifies(c) {
			return
		}
		if len(c.Parents) != 1 {
			t.Fatalf("qualified commit has %d parents", len(c.Parents))
		}
		v, ok := c.Labels[DefaultLabel]
		if !ok || !Truthy(v) {
			t.Fatalf("qualified commit has label value %#v", v)
		}
	})
}

func TestQualifies_Rapid_OtherLabelsAreIgnored(t *testing.T) {
	d := NewDetector([]string{DefaultLabel}, 1)

	rapid.Check(t, func(t *rapid.T) {
		c := genCommit().Draw(t, "commit")
		before := d.Qualifies(c)

		if c.Labels != nil {
			c.Labels["adjustedszz_bugfix"] = genLabelValue().Draw(t, "noise")
		}
		if after := d.Qualifies(c); after != before {
			t.Fatalf("unrelated label changed qualification: %v -> %v", before, after)
		}
	})
}
