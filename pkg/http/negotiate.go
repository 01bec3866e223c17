package http

import (
	"context"
	"log/slog"
)

// Specificity grades how exactly a preference matches an offer.
type Specificity int

const (
	// NoMatch means the preference does not cover the offer.
	NoMatch Specificity = iota
	// MatchAny is a "*/*" preference.
	MatchAny
	// MatchType is a "type/*" preference with the offer's type.
	MatchType
	// MatchExact names the offer's type and subtype.
	MatchExact
)

// Match reports how specifically pref matches the concrete offer mt,
// ignoring parameters.
func Match(pref, mt MediaType) Specificity {
	switch {
	case pref.typ == "*":
		if pref.sub != "*" {
			return NoMatch
		}
		return MatchAny
	case pref.typ != mt.typ:
		return NoMatch
	case pref.sub == "*":
		return MatchType
	case pref.sub == mt.sub:
		return MatchExact
	}
	return NoMatch
}

// paramsSatisfied reports whether every parameter of pref is present in
// mt with exactly the same value.
func paramsSatisfied(pref, mt MediaType) bool {
	for _, p := range pref.params {
		v, ok := mt.Param(p.Name)
		if !ok || v != p.Value {
			return false
		}
	}
	return true
}

// Negotiator selects a representation for an Accept list.
// The zero Negotiator is ready to use and does not log.
type Negotiator struct {
	Logger *slog.Logger // debug records; nil disables logging
}

type candidate struct {
	quality     Quality
	specificity Specificity
	pref        int
	offer       int
}

func (c candidate) betterThan(o candidate) bool {
	if c.quality != o.quality {
		return c.quality > o.quality
	}
	if c.specificity != o.specificity {
		return c.specificity > o.specificity
	}
	if c.pref != o.pref {
		return c.pref < o.pref
	}
	return c.offer < o.offer
}

// Negotiate returns the offered media type that best satisfies prefs.
//
// Preferences with q=0 never match. Every remaining (preference, offer)
// pair whose type matches and whose preference parameters are all present
// in the offer is ranked by quality, then specificity, then preference
// order, then offer order. It reports false when no pair survives.
func (n Negotiator) Negotiate(prefs Accept, offered []MediaType) (MediaType, bool) {
	logger := n.Logger
	ctx := context.Background()
	debug := logger != nil && logger.Enabled(ctx, slog.LevelDebug)

	var best candidate
	found := false
	for i, pref := range prefs {
		if pref.Quality == 0 {
			continue
		}
		for j, mt := range offered {
			spec := Match(pref.MediaType, mt)
			if spec == NoMatch || !paramsSatisfied(pref.MediaType, mt) {
				continue
			}
			c := candidate{quality: pref.Quality, specificity: spec, pref: i, offer: j}
			if debug {
				logger.DebugContext(ctx, "negotiation candidate",
					"preference", pref.MediaType,
					"q", pref.Quality.String(),
					"offer", mt,
					"specificity", int(spec),
				)
			}
			if !found || c.betterThan(best) {
				best, found = c, true
			}
		}
	}

	if !found {
		if debug {
			logger.DebugContext(ctx, "no acceptable media type", "accept", prefs.String(), "offers", len(offered))
		}
		return MediaType{}, false
	}
	if debug {
		logger.DebugContext(ctx, "negotiated media type", "media_type", offered[best.offer], "q", best.quality.String())
	}
	return offered[best.offer], true
}

// Negotiate is Negotiator{}.Negotiate.
func Negotiate(prefs Accept, offered []MediaType) (MediaType, bool) {
	return Negotiator{}.Negotiate(prefs, offered)
}
