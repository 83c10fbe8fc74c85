package fault

import (
	"context"
	"errors"
	"strings"
)

// Classified is the presentation-layer shape of a failure.
//
// UserMessage always comes from the fixed taxonomy table below; raw transport
// detail never reaches it.
type Classified struct {
	Kind        Kind   `json:"kind"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	UserMessage string `json:"userMessage"`
}

var userMessages = map[string]string{
	CodeMissingSection:      "The reference is missing required sections. Please complete all fields.",
	CodeValidationFailed:    "The reference failed validation. Please review the reported fields.",
	CodeInsufficientBalance: "Insufficient balance to store the reference. Please fund your account.",
	CodeInvalidAmount:       "Invalid amount format provided.",
	CodeUploadFailed:        "Failed to upload the reference to permanent storage. Please try again.",
	CodeRetrieveFailed:      "Failed to retrieve the reference from storage.",
	CodeWalletNotConnected:  "Please connect your wallet to continue.",
	CodeWalletMismatch:      "Please switch to the correct network.",
	CodeWalletRejected:      "Transaction was rejected. Please try again.",
	CodeNetwork:             "Network error occurred. Please check your connection.",
	CodeTimeout:             "Request timed out. Please try again.",
	CodeUnknown:             "An unexpected error occurred. Please try again.",
}

var kindDefaultCode = map[Kind]string{
	KindStructure:           CodeMissingSection,
	KindValidation:          CodeValidationFailed,
	KindInsufficientBalance: CodeInsufficientBalance,
	KindArithmetic:          CodeInvalidAmount,
	KindUpload:              CodeUploadFailed,
	KindRetrieve:            CodeRetrieveFailed,
	KindWallet:              CodeWalletNotConnected,
	KindNetwork:             CodeNetwork,
	KindTimeout:             CodeTimeout,
	KindUnknown:             CodeUnknown,
}

// Classify maps any error into the closed taxonomy.
//
// Structured *Error values are trusted as declared. Plain errors are matched
// against known message substrings (storage-network terms, wallet terms,
// network/timeout terms) to pick the best-fit Kind, defaulting to Unknown.
func Classify(err error) Classified {
	if err == nil {
		return Classified{Kind: KindUnknown, Code: CodeUnknown, UserMessage: userMessages[CodeUnknown]}
	}

	var e *Error
	if errors.As(err, &e) {
		code := e.Code
		if code == "" {
			code = kindDefaultCode[e.Kind]
		}
		um, ok := userMessages[code]
		if !ok {
			um = userMessages[CodeUnknown]
		}
		return Classified{Kind: e.Kind, Code: code, Message: e.Message, UserMessage: um}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return classified(KindTimeout, CodeTimeout, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case hasAny(msg, "bundler", "gateway", "storage node", "irys", "arweave", "permanent storage"):
		switch {
		case strings.Contains(msg, "insufficient"):
			return classified(KindInsufficientBalance, CodeInsufficientBalance, err)
		case hasAny(msg, "retriev", "fetch", "download"):
			return classified(KindRetrieve, CodeRetrieveFailed, err)
		default:
			return classified(KindUpload, CodeUploadFailed, err)
		}
	case hasAny(msg, "wallet", "metamask", "signer"):
		switch {
		case hasAny(msg, "rejected", "denied"):
			return classified(KindWallet, CodeWalletRejected, err)
		case hasAny(msg, "network", "chain"):
			return classified(KindWallet, CodeWalletMismatch, err)
		default:
			return classified(KindWallet, CodeWalletNotConnected, err)
		}
	case hasAny(msg, "timeout", "timed out", "deadline"):
		return classified(KindTimeout, CodeTimeout, err)
	case hasAny(msg, "network", "connection", "fetch", "dial", "unreachable"):
		return classified(KindNetwork, CodeNetwork, err)
	default:
		return classified(KindUnknown, CodeUnknown, err)
	}
}

// UserMessage is a convenience wrapper over Classify for presentation code.
func UserMessage(err error) string {
	return Classify(err).UserMessage
}

func classified(kind Kind, code string, err error) Classified {
	return Classified{Kind: kind, Code: code, Message: err.Error(), UserMessage: userMessages[code]}
}

func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
