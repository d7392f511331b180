package redirectguard

import "context"

// StorageOp is the storage side effect a decision requires.
type StorageOp int

const (
	StorageNone StorageOp = iota
	// StorageSet records Decision.PendingPath as the pending redirect.
	StorageSet
	// StorageConsume clears the pending redirect that was just read.
	StorageConsume
)

func (op StorageOp) String() string {
	switch op {
	case StorageSet:
		return "set"
	case StorageConsume:
		return "consume"
	default:
		return "none"
	}
}

// Reason names the transition that produced a navigation.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonLoginRequired     Reason = "login_required"
	ReasonPendingRedirect   Reason = "pending_redirect"
	ReasonAlreadySignedIn   Reason = "already_signed_in"
	ReasonProtectedDeferred Reason = "protected_deferred"
)

// Decision is the outcome of one evaluation. NavigateTo is empty when no
// navigation should happen.
type Decision struct {
	NavigateTo  string
	Storage     StorageOp
	PendingPath string
	Reason      Reason
}

// Navigates reports whether the decision carries a navigation.
func (d Decision) Navigates() bool {
	return d.NavigateTo != ""
}

// Pending is the pending-redirect value read before evaluation.
type Pending struct {
	Path    string
	Present bool
}

// Evaluate decides the navigation and storage effect for one input.
//
// The protected check only fires for unauthenticated sessions and the
// auth-only check only for authenticated ones, so a path configured in both
// sets still yields at most one navigation. Both checks run, in that order.
//
// A loading session never navigates. The decision reports
// ReasonProtectedDeferred when the path is protected so the embedding layer
// can hold back protected content until the status settles.
func Evaluate(input Input, pending Pending, opts Options) Decision {
	opts = opts.normalized()
	protected, authOnly := Classify(input.Path, opts.Routes)

	if input.Status == StatusLoading {
		if protected {
			return Decision{Reason: ReasonProtectedDeferred}
		}
		return Decision{}
	}

	decision := Decision{}
	if protected && input.Status == StatusUnauthenticated {
		decision = Decision{
			NavigateTo:  opts.FallbackURL,
			Storage:     StorageSet,
			PendingPath: input.Path,
			Reason:      ReasonLoginRequired,
		}
	}
	if authOnly && input.Status == StatusAuthenticated {
		target := opts.AuthenticatedRedirect
		reason := ReasonAlreadySignedIn
		op := StorageNone
		if pending.Present {
			op = StorageConsume
			if IsLocalPath(pending.Path) {
				target = pending.Path
				reason = ReasonPendingRedirect
			}
		}
		decision = Decision{NavigateTo: target, Storage: op, Reason: reason}
	}
	return decision
}

// Storage is session-scoped key/value storage.
type Storage interface {
	Get(key string) (string, bool)
	Set(key string, value string)
	Remove(key string)
}

// Navigator issues fire-and-forget navigations.
type Navigator interface {
	Push(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Push calls f(path).
func (f NavigatorFunc) Push(path string) {
	f(path)
}

// Observer is notified after every applied decision that navigates.
type Observer func(ctx context.Context, input Input, decision Decision)

// Guard applies decisions against storage and navigation capabilities.
type Guard struct {
	opts     Options
	observer Observer
}

// New builds a guard. Empty destinations fall back to the defaults.
func New(opts Options) Guard {
	return Guard{opts: opts.normalized()}
}

// WithObserver returns a copy of g that reports navigations to observer.
func (g Guard) WithObserver(observer Observer) Guard {
	g.observer = observer
	return g
}

// Options returns the normalized guard options.
func (g Guard) Options() Options {
	return g.opts
}

// Apply reads the pending redirect, evaluates input, performs the storage
// effect and then issues at most one navigation. The pending value is read
// and cleared within this single call.
func (g Guard) Apply(ctx context.Context, input Input, store Storage, nav Navigator) Decision {
	pending := Pending{}
	if store != nil {
		pending.Path, pending.Present = store.Get(PendingRedirectKey)
	}

	decision := Evaluate(input, pending, g.opts)

	if store != nil {
		switch decision.Storage {
		case StorageSet:
			store.Set(PendingRedirectKey, decision.PendingPath)
		case StorageConsume:
			store.Remove(PendingRedirectKey)
		}
	}
	if decision.Navigates() {
		if nav != nil {
			nav.Push(decision.NavigateTo)
		}
		if g.observer != nil {
			g.observer(ctx, input, decision)
		}
	}
	return decision
}
