// ABOUTME: Local overlay of optimistic engagement deltas applied over cached counts.
// ABOUTME: Deltas roll back when the reaction call fails and drop when a re-fetch arrives.
package feed

// overlay tracks engagement deltas the user created locally (likes and
// reshares applied before the platform confirmed them). The cache stays
// authoritative; the overlay is merged in at display time only.
type overlay struct {
	deltas map[string]Engagement
}

func newOverlay() *overlay {
	return &overlay{deltas: make(map[string]Engagement)}
}

func (o *overlay) bump(id string, kind ReactionKind) {
	d := o.deltas[id]
	switch kind {
	case ReactionLike:
		d.Likes++
	case ReactionReshare:
		d.Reshares++
	}
	o.deltas[id] = d
}

// revert undoes one bump of the given kind, removing the entry once it
// carries no delta at all.
func (o *overlay) revert(id string, kind ReactionKind) {
	d, ok := o.deltas[id]
	if !ok {
		return
	}
	switch kind {
	case ReactionLike:
		d.Likes--
	case ReactionReshare:
		d.Reshares--
	}
	if d == (Engagement{}) {
		delete(o.deltas, id)
	} else {
		o.deltas[id] = d
	}
}

// drop discards the delta for id; called when a fetch re-observes the
// post and the cache now holds authoritative counts.
func (o *overlay) drop(id string) {
	delete(o.deltas, id)
}

// apply returns posts with deltas folded into copies; posts without a
// delta pass through unchanged.
func (o *overlay) apply(posts []*Post) []*Post {
	if len(o.deltas) == 0 {
		return posts
	}
	out := make([]*Post, len(posts))
	for i, p := range posts {
		if d, ok := o.deltas[p.ID]; ok {
			cp := *p
			cp.Engagement.Likes += d.Likes
			cp.Engagement.Reshares += d.Reshares
			cp.Engagement.Replies += d.Replies
			cp.Engagement.Quotes += d.Quotes
			out[i] = &cp
		} else {
			out[i] = p
		}
	}
	return out
}

func (o *overlay) reset() {
	o.deltas = make(map[string]Engagement)
}
