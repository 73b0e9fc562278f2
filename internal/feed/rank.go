// ABOUTME: Ranking and selection engine: pure function from cached posts to a display subset.
// ABOUTME: Deterministic for fixed inputs; unknown algorithms fall back to latest.
package feed

import (
	"math/rand"
	"sort"
	"time"
)

// Algorithm selects how the display subset is chosen from the cache.
type Algorithm string

const (
	AlgorithmLatest   Algorithm = "latest"
	AlgorithmTrending Algorithm = "trending"
	AlgorithmViral    Algorithm = "viral"
	AlgorithmDiverse  Algorithm = "diverse"
	AlgorithmBalanced Algorithm = "balanced"
	AlgorithmRandom   Algorithm = "random"
)

// Algorithms lists every supported algorithm. The set is closed; values
// outside it behave like AlgorithmLatest.
var Algorithms = []Algorithm{
	AlgorithmLatest,
	AlgorithmTrending,
	AlgorithmViral,
	AlgorithmDiverse,
	AlgorithmBalanced,
	AlgorithmRandom,
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	for _, known := range Algorithms {
		if a == known {
			return true
		}
	}
	return false
}

const (
	reshareWeight  = 2.0
	replyWeight    = 1.5
	decayHours     = 24.0
	decayFloor     = 0.1
	viralThreshold = 10.0

	// DefaultDisplayLimit is used when the configured limit is not a
	// positive integer. Invalid configuration is lenient, never fatal.
	DefaultDisplayLimit = 20
)

// EngagementScore is the weighted interaction count used by the scoring
// algorithms: likes + 2×reshares + 1.5×replies.
func EngagementScore(p *Post) float64 {
	return float64(p.Engagement.Likes) +
		reshareWeight*float64(p.Engagement.Reshares) +
		replyWeight*float64(p.Engagement.Replies)
}

// TimeDecay is the multiplicative age penalty: 1 at publication, linear
// down to the 0.1 floor after 24 hours. The floor keeps old posts scored
// above zero so age alone never excludes them.
func TimeDecay(p *Post, now time.Time) float64 {
	hours := now.Sub(p.CreatedAt).Hours()
	decay := 1.0 - hours/decayHours
	if decay < decayFloor {
		return decayFloor
	}
	return decay
}

// Score is EngagementScore scaled by TimeDecay.
func Score(p *Post, now time.Time) float64 {
	return EngagementScore(p) * TimeDecay(p, now)
}

// Rank selects and orders at most limit posts from posts under the given
// algorithm. The input slice is never mutated. For a fixed input, limit,
// and now, the result is identical across calls. An empty input yields an
// empty result; a limit larger than the input returns everything that
// survives filtering, without padding.
func Rank(posts []*Post, algorithm Algorithm, limit int, now time.Time) []*Post {
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}
	if len(posts) == 0 {
		return nil
	}

	var ranked []*Post
	switch algorithm {
	case AlgorithmTrending:
		ranked = sortByScore(posts, now)
	case AlgorithmViral:
		var hot []*Post
		for _, p := range posts {
			if Score(p, now) >= viralThreshold {
				hot = append(hot, p)
			}
		}
		ranked = sortByScore(hot, now)
	case AlgorithmDiverse:
		ranked = diversify(sortByScore(posts, now))
	case AlgorithmBalanced:
		ranked = sortBalanced(posts, now)
	case AlgorithmRandom:
		ranked = shuffle(posts, now)
	default:
		// Includes AlgorithmLatest and any unknown name.
		ranked = sortByTime(posts)
	}

	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}

// sortByTime orders newest first, keeping input order for equal timestamps.
func sortByTime(posts []*Post) []*Post {
	out := make([]*Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// sortByScore orders by decayed engagement score descending, stable.
func sortByScore(posts []*Post, now time.Time) []*Post {
	out := make([]*Post, len(posts))
	copy(out, posts)
	scores := make(map[string]float64, len(out))
	for _, p := range out {
		scores[p.ID] = Score(p, now)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i].ID] > scores[out[j].ID]
	})
	return out
}

// diversify reorders a score-sorted list round-robin by author, so one
// prolific account cannot monopolize the top of the feed. Within each
// round authors appear in the order their best post ranked.
func diversify(ranked []*Post) []*Post {
	byAuthor := make(map[string][]*Post)
	var authors []string
	for _, p := range ranked {
		if _, seen := byAuthor[p.AuthorID]; !seen {
			authors = append(authors, p.AuthorID)
		}
		byAuthor[p.AuthorID] = append(byAuthor[p.AuthorID], p)
	}

	out := make([]*Post, 0, len(ranked))
	for round := 0; len(out) < len(ranked); round++ {
		for _, a := range authors {
			if round < len(byAuthor[a]) {
				out = append(out, byAuthor[a][round])
			}
		}
	}
	return out
}

// sortBalanced blends normalized engagement with recency so fresh posts
// with modest engagement can surface next to older popular ones.
func sortBalanced(posts []*Post, now time.Time) []*Post {
	maxScore := 0.0
	for _, p := range posts {
		if s := EngagementScore(p); s > maxScore {
			maxScore = s
		}
	}

	blend := make(map[string]float64, len(posts))
	for _, p := range posts {
		engagement := 0.0
		if maxScore > 0 {
			engagement = EngagementScore(p) / maxScore
		}
		blend[p.ID] = 0.5*engagement + 0.5*TimeDecay(p, now)
	}

	out := make([]*Post, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return blend[out[i].ID] > blend[out[j].ID]
	})
	return out
}

// shuffle returns a pseudo-random permutation seeded from now, so the
// selection is stable within a single ranking pass but varies between
// refreshes.
func shuffle(posts []*Post, now time.Time) []*Post {
	out := make([]*Post, len(posts))
	copy(out, posts)
	rng := rand.New(rand.NewSource(now.UnixNano()))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
