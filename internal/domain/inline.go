package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// InlineKind names an inline query result offered to the user.
type InlineKind string

const (
	InlineStartDuel      InlineKind = "get_start_duel"
	InlineTop10Info      InlineKind = "get_top10_info"
	InlinePigInfo        InlineKind = "get_hryak_info"
	InlineMoreInfo       InlineKind = "get_more_info"
	InlineNameInfo       InlineKind = "name_hryak_info"
	InlineRenameInfo     InlineKind = "rename_hryak_info"
	InlineDayPigInfo     InlineKind = "day_pig_info"
	InlineFlagInfo       InlineKind = "flag_info"
	InlineFlagEmptyInfo  InlineKind = "flag_empty_info"
	InlineFlagChangeInfo InlineKind = "flag_change_info"
	InlineLangInfo       InlineKind = "lang_info"
	InlineLangEmptyInfo  InlineKind = "lang_empty_info"
	InlineLangChangeInfo InlineKind = "lang_change_info"
	InlineCPUOcInfo      InlineKind = "cpu_oc_info"
	InlineRAMOcInfo      InlineKind = "ram_oc_info"
	InlineGPUOcInfo      InlineKind = "gpu_oc_info"
	InlineErrorInfo      InlineKind = "error_info"
	InlineErrorParse     InlineKind = "error_parse"
	InlineNoResults      InlineKind = "no_results"
)

// InlineDelimiter separates the kind from its payload in a result id.
const InlineDelimiter = "|"

var inlineKinds = map[InlineKind]bool{
	InlineStartDuel: false, InlineTop10Info: false, InlinePigInfo: false,
	InlineMoreInfo: false, InlineNameInfo: false, InlineRenameInfo: false,
	InlineDayPigInfo: false, InlineFlagInfo: false, InlineFlagEmptyInfo: false,
	InlineFlagChangeInfo: true, InlineLangInfo: false, InlineLangEmptyInfo: false,
	InlineLangChangeInfo: true, InlineCPUOcInfo: false, InlineRAMOcInfo: false,
	InlineGPUOcInfo: false, InlineErrorInfo: false, InlineErrorParse: false,
	InlineNoResults: false,
}

// ErrInvalidInlineResult is returned when a result id cannot be decoded.
var ErrInvalidInlineResult = errors.New("invalid inline result id")

// InlineResult is the tagged id of an inline result. Index carries the
// payload of the *_change_info kinds and is zero for the others.
type InlineResult struct {
	Kind  InlineKind
	Index int
}

// HasPayload reports whether the kind carries an index.
func (r InlineResult) HasPayload() bool { return inlineKinds[r.Kind] }

// String encodes the result as kind|payload. Kinds without payload keep the
// trailing delimiter.
func (r InlineResult) String() string {
	if r.HasPayload() {
		return string(r.Kind) + InlineDelimiter + strconv.Itoa(r.Index)
	}
	return string(r.Kind) + InlineDelimiter
}

// ParseInlineResult decodes an id produced by InlineResult.String.
func ParseInlineResult(s string) (InlineResult, error) {
	key, value, ok := strings.Cut(s, InlineDelimiter)
	if !ok {
		return InlineResult{}, fmt.Errorf("%w: %q", ErrInvalidInlineResult, s)
	}
	kind := InlineKind(key)
	hasPayload, known := inlineKinds[kind]
	if !known {
		return InlineResult{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidInlineResult, key)
	}
	if !hasPayload {
		return InlineResult{Kind: kind}, nil
	}
	idx, err := strconv.ParseUint(value, 10, 31)
	if err != nil {
		return InlineResult{}, fmt.Errorf("%w: payload %q", ErrInvalidInlineResult, value)
	}
	return InlineResult{Kind: kind, Index: int(idx)}, nil
}

// CallbackAction is the first segment of inline keyboard callback data.
type CallbackAction string

const (
	ActionGiveName      CallbackAction = "give_name"
	ActionFindPig       CallbackAction = "find_hryak"
	ActionAddChat       CallbackAction = "add_chat"
	ActionTop10         CallbackAction = "top10"
	ActionStartDuel     CallbackAction = "start_duel"
	ActionTopLeft       CallbackAction = "top_left"
	ActionTopRight      CallbackAction = "top_right"
	ActionAllowVoice    CallbackAction = "allow_voice"
	ActionDisallowVoice CallbackAction = "disallow_voice"
	ActionChangeFlag    CallbackAction = "change_flag"
	ActionChangeLang    CallbackAction = "change_lang"
	ActionSubCheck      CallbackAction = "sub_check"
	ActionSubGift       CallbackAction = "sub_gift"
	ActionGifDecision   CallbackAction = "gif_decision"
)

const (
	callbackSeparator = ":"
	// MaxCallbackData is Telegram's limit on callback data, in bytes.
	MaxCallbackData = 64
)

// ErrInvalidCallbackData is returned for callback data that cannot be
// encoded within the limit or decoded at all.
var ErrInvalidCallbackData = errors.New("invalid callback data")

// CallbackData is the decoded action:user:payload triple.
type CallbackData struct {
	Action  CallbackAction
	UserID  uint64
	Payload string
}

// Encode renders the callback data, failing when it exceeds MaxCallbackData.
func (d CallbackData) Encode() (string, error) {
	var b strings.Builder
	b.Grow(MaxCallbackData)
	b.WriteString(string(d.Action))
	b.WriteString(callbackSeparator)
	b.WriteString(strconv.FormatUint(d.UserID, 10))
	b.WriteString(callbackSeparator)
	b.WriteString(d.Payload)

	if b.Len() > MaxCallbackData {
		return "", fmt.Errorf("%w: %d bytes", ErrInvalidCallbackData, b.Len())
	}
	return b.String(), nil
}

// ParseCallbackData decodes data. The payload may itself contain separators.
func ParseCallbackData(data string) (CallbackData, error) {
	parts := strings.SplitN(data, callbackSeparator, 3)
	if len(parts) < 3 {
		return CallbackData{}, fmt.Errorf("%w: %q", ErrInvalidCallbackData, data)
	}
	uid, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return CallbackData{}, fmt.Errorf("%w: user %q", ErrInvalidCallbackData, parts[1])
	}
	return CallbackData{Action: CallbackAction(parts[0]), UserID: uid, Payload: parts[2]}, nil
}

// TopVariant selects a leaderboard.
type TopVariant string

const (
	TopGlobal  TopVariant = "global"
	TopChat    TopVariant = "chat"
	TopWin     TopVariant = "win"
	TopPGlobal TopVariant = "p_global"
	TopPWin    TopVariant = "p_win"
)

// ParseTopVariant validates a variant name.
func ParseTopVariant(s string) (TopVariant, bool) {
	switch v := TopVariant(s); v {
	case TopGlobal, TopChat, TopWin, TopPGlobal, TopPWin:
		return v, true
	}
	return "", false
}

// Summarize folds the paginated variants into their base board.
func (v TopVariant) Summarize() TopVariant {
	switch v {
	case TopPGlobal:
		return TopGlobal
	case TopPWin:
		return TopWin
	default:
		return v
	}
}
