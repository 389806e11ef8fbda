package controller

import "github.com/abelbrown/hnbar/internal/state"

// ActionMsg carries actions back into the update loop, in order.
type ActionMsg struct {
	Actions []state.Action
}

// Msg wraps actions in an ActionMsg.
func Msg(actions ...state.Action) ActionMsg {
	return ActionMsg{Actions: actions}
}

// NoticeMsg announces that a story crossed the score limit.
type NoticeMsg struct {
	Story state.Story
	Limit int
}
