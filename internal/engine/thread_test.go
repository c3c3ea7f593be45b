package engine

import (
	"testing"

	"github.com/ripplr-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reply(replyingTo string) models.Post {
	return models.Post{
		ID:         primitive.NewObjectID(),
		ReplyingTo: replyingTo,
	}
}

func ids(entries []models.ThreadEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID.Hex()
	}
	return out
}

func depths(entries []models.ThreadEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Depth
	}
	return out
}

func TestReconstructThreadNestsRepliesAfterTheirParent(t *testing.T) {
	r1 := reply("")
	r2 := reply(r1.ID.Hex())
	r3 := reply("")

	entries := ReconstructThread([]models.Post{r1, r2, r3})

	assert.Equal(t, []string{r1.ID.Hex(), r2.ID.Hex(), r3.ID.Hex()}, ids(entries))
	assert.Equal(t, []int{0, 1, 0}, depths(entries))
}

func TestReconstructThreadDepthFollowsChain(t *testing.T) {
	r1 := reply("")
	r2 := reply(r1.ID.Hex())
	r3 := reply(r2.ID.Hex())

	entries := ReconstructThread([]models.Post{r1, r2, r3})

	require.Len(t, entries, 3)
	assert.Equal(t, []int{0, 1, 2}, depths(entries))
}

func TestReconstructThreadIsIdempotent(t *testing.T) {
	r1 := reply("")
	r2 := reply(r1.ID.Hex())
	r3 := reply(r1.ID.Hex())
	input := []models.Post{r1, r2, r3}

	first := ReconstructThread(input)
	second := ReconstructThread(input)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, depths(first), depths(second))
}

func TestReconstructThreadSiblingsKeepInputOrder(t *testing.T) {
	r1 := reply("")
	r2 := reply("")
	c1 := reply(r1.ID.Hex())
	c2 := reply(r1.ID.Hex())

	// Input order decides sibling grouping: c2 before c1.
	entries := ReconstructThread([]models.Post{r1, c2, c1, r2})

	assert.Equal(t, []string{r1.ID.Hex(), c2.ID.Hex(), c1.ID.Hex(), r2.ID.Hex()}, ids(entries))
	assert.Equal(t, []int{0, 1, 1, 0}, depths(entries))
}

func TestReconstructThreadSelfReferenceAppearsOnce(t *testing.T) {
	r1 := reply("")
	selfRef := models.Post{ID: primitive.NewObjectID()}
	selfRef.ReplyingTo = selfRef.ID.Hex()

	entries := ReconstructThread([]models.Post{r1, selfRef})

	require.Len(t, entries, 2)
	assert.Equal(t, []string{r1.ID.Hex(), selfRef.ID.Hex()}, ids(entries))
	assert.Equal(t, []int{0, 0}, depths(entries))
}

func TestReconstructThreadOmitsOrphans(t *testing.T) {
	r1 := reply("")
	orphan := reply(primitive.NewObjectID().Hex()) // parent not in the set

	entries := ReconstructThread([]models.Post{r1, orphan})

	require.Len(t, entries, 1)
	assert.Equal(t, r1.ID.Hex(), entries[0].ID.Hex())
}

func TestReconstructThreadOmitsReferenceCycles(t *testing.T) {
	a := models.Post{ID: primitive.NewObjectID()}
	b := models.Post{ID: primitive.NewObjectID()}
	a.ReplyingTo = b.ID.Hex()
	b.ReplyingTo = a.ID.Hex()
	r1 := reply("")

	// Neither cycle member is reachable from a root; the walk
	// terminates and both are dropped.
	entries := ReconstructThread([]models.Post{a, b, r1})

	require.Len(t, entries, 1)
	assert.Equal(t, r1.ID.Hex(), entries[0].ID.Hex())
}

func TestReconstructThreadEmptyInput(t *testing.T) {
	assert.Empty(t, ReconstructThread(nil))
}
