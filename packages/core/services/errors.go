package services

import "errors"

// Domain errors surfaced to the HTTP layer. Handlers map them to status
// codes; services never touch gin.
var (
	ErrPoolNotFound  = errors.New("pool not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrPollNotFound  = errors.New("poll not found")
	ErrBetNotFound   = errors.New("bet not found")

	// join flow
	ErrInvalidCode   = errors.New("invalid invite code")
	ErrPoolClosed    = errors.New("pool is not accepting participants")
	ErrPoolFull      = errors.New("pool has reached its participant limit")
	ErrAlreadyMember = errors.New("user is already a participant of this pool")
	ErrNotMember     = errors.New("user is not a participant of this pool")

	// bet flow
	ErrDeadlinePassed    = errors.New("betting deadline has passed")
	ErrMatchNotScheduled = errors.New("match is not open for bets")
	ErrBetsHidden        = errors.New("bets are hidden until the deadline")

	// scoring
	ErrIncompleteMatch  = errors.New("match is not finished or has no final score")
	ErrScoresNotAllowed = errors.New("scores can only be set on live or finished matches")
	ErrSameTeam         = errors.New("home and away teams must be different")

	// lifecycle
	ErrNotCreator        = errors.New("only the creator can perform this action")
	ErrCreatorCantLeave  = errors.New("the creator cannot leave their own pool")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPoolNotDraft      = errors.New("pool can only be deleted while in draft")
	ErrNoMatchScheduled  = errors.New("pool needs at least one scheduled match")
	ErrInvalidDates      = errors.New("end date must be after start date")

	// polls
	ErrPollNotOpen     = errors.New("poll is not open for voting")
	ErrPollNotDraft    = errors.New("poll can only be deleted while in draft")
	ErrAlreadyVoted    = errors.New("user has already voted in this poll")
	ErrOptionNotInPoll = errors.New("option does not belong to this poll")
	ErrTooFewOptions   = errors.New("poll needs at least two options")
)
