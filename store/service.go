// Package store orchestrates the reference storage pipeline: canonicalize,
// validate, hash, price, upload, and the inverse retrieve/re-hash/compare.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"blockref.dev/refstore/fault"
	"blockref.dev/refstore/network"
	"blockref.dev/refstore/record"
	"blockref.dev/refstore/units"
)

// MaxKeywordTags caps the keyword list attached to an upload.
const MaxKeywordTags = 10

// Service sequences the storage pipeline against an injected storage-network
// client. It holds no persistent state about stored records; results are
// owned by the caller.
type Service struct {
	client     network.Client
	log        *slog.Logger
	appName    string
	appVersion string
	gateway    string
	decimals   int
}

type Options struct {
	// AppName/AppVersion identify this application on upload tags.
	// Default "BlockRef" / "1.0.0".
	AppName    string
	AppVersion string

	// GatewayURL is the public gateway base used in NFT metadata links.
	GatewayURL string

	// Decimals is the payment token's atomic-unit scale. Default 18.
	Decimals int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New constructs a Service around a storage-network client.
func New(client network.Client, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	appName := opts.AppName
	if appName == "" {
		appName = "BlockRef"
	}
	appVersion := opts.AppVersion
	if appVersion == "" {
		appVersion = "1.0.0"
	}
	gw := opts.GatewayURL
	if gw == "" {
		gw = "https://gateway.irys.xyz"
	}
	decimals := opts.Decimals
	if decimals <= 0 {
		decimals = units.DefaultDecimals
	}
	return &Service{
		client:     client,
		log:        log,
		appName:    appName,
		appVersion: appVersion,
		gateway:    gw,
		decimals:   decimals,
	}
}

// StoreResult is returned by Store. The record inside is finalized: hash and
// content id are set.
type StoreResult struct {
	ContentID        string         `json:"contentId"`
	VerificationHash string         `json:"verificationHash"`
	RecordID         string         `json:"recordId"`
	Cost             string         `json:"cost"`
	Timestamp        int64          `json:"timestamp"`
	Record           *record.Record `json:"record"`
	Validation       record.Result  `json:"validation"`
}

// Store runs the full pipeline on raw sectioned input and uploads the
// canonical record.
//
// Canonicalization and validation failures are deterministic and returned
// immediately; they are never worth retrying. An exact atomic shortfall is
// carried on the insufficient-balance error.
func (s *Service) Store(ctx context.Context, raw record.Raw) (*StoreResult, error) {
	rec, err := record.New(raw)
	if err != nil {
		return nil, err
	}

	validation := record.Validate(rec)
	if !validation.IsValid {
		return nil, &fault.Error{
			Kind:    fault.KindValidation,
			Code:    fault.CodeValidationFailed,
			Message: fmt.Sprintf("reference validation failed: %d error(s)", len(validation.Errors)),
			Fields:  validation.Errors,
		}
	}

	if err := record.Seal(rec); err != nil {
		return nil, err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	check, err := s.checkBalance(ctx, len(data))
	if err != nil {
		return nil, err
	}
	if !check.Sufficient {
		return nil, &fault.Error{
			Kind:      fault.KindInsufficientBalance,
			Code:      fault.CodeInsufficientBalance,
			Message:   fmt.Sprintf("insufficient balance: need %s more atomic units", check.Shortfall),
			Shortfall: check.Shortfall,
		}
	}

	keywords := record.Keywords(rec)
	if len(keywords) > MaxKeywordTags {
		keywords = keywords[:MaxKeywordTags]
	}

	receipt, err := s.client.Upload(ctx, data, s.uploadTags(rec, keywords))
	if err != nil {
		return nil, fault.Wrap(fault.KindUpload, fault.CodeUploadFailed, "reference upload failed", err)
	}
	rec.Verification.ContentID = receipt.ID

	s.log.Info("reference stored",
		"recordId", rec.ID,
		"contentId", receipt.ID,
		"cost", check.Cost,
		"bytes", len(data),
	)

	return &StoreResult{
		ContentID:        receipt.ID,
		VerificationHash: rec.Verification.VerificationHash,
		RecordID:         rec.ID,
		Cost:             check.Cost,
		Timestamp:        receipt.Timestamp,
		Record:           rec,
		Validation:       validation,
	}, nil
}

// RetrieveResult pairs a fetched record with its validation outcome. A
// structurally invalid but successfully fetched record is still returned,
// flagged invalid, not discarded.
type RetrieveResult struct {
	Record     *record.Record `json:"record"`
	IsValid    bool           `json:"isValid"`
	Validation record.Result  `json:"validation"`
}

// Retrieve fetches and re-validates a stored record.
func (s *Service) Retrieve(ctx context.Context, contentID string) (*RetrieveResult, error) {
	data, err := s.client.Download(ctx, contentID)
	if err != nil {
		return nil, fault.Wrap(fault.KindRetrieve, fault.CodeRetrieveFailed,
			fmt.Sprintf("reference retrieval failed for %s", contentID), err)
	}

	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fault.Wrap(fault.KindRetrieve, fault.CodeRetrieveFailed,
			fmt.Sprintf("stored bytes for %s are not a reference record", contentID), err)
	}

	validation := record.Validate(&rec)
	return &RetrieveResult{Record: &rec, IsValid: validation.IsValid, Validation: validation}, nil
}

// VerifyResult reports an integrity check of a stored record. A hash mismatch
// signals tampering or corruption; it is reported, not raised, so callers
// decide how to react.
type VerifyResult struct {
	ContentID        string        `json:"contentId"`
	RecordID         string        `json:"recordId"`
	IsIntegrityValid bool          `json:"isIntegrityValid"`
	CalculatedHash   string        `json:"calculatedHash"`
	StoredHash       string        `json:"storedHash"`
	Timestamp        string        `json:"timestamp"`
	Company          string        `json:"company"`
	Employee         string        `json:"employee"`
	Validation       record.Result `json:"validation"`
}

// Verify retrieves a record, recomputes its verification hash, and compares
// byte-for-byte against the stored hash.
func (s *Service) Verify(ctx context.Context, contentID string) (*VerifyResult, error) {
	ret, err := s.Retrieve(ctx, contentID)
	if err != nil {
		return nil, err
	}
	rec := ret.Record

	calculated, err := record.Hash(rec)
	if err != nil {
		return nil, err
	}
	stored := rec.Verification.VerificationHash

	res := &VerifyResult{
		ContentID:        contentID,
		RecordID:         rec.ID,
		IsIntegrityValid: calculated == stored,
		CalculatedHash:   calculated,
		StoredHash:       stored,
		Timestamp:        rec.Timestamp,
		Company:          rec.Employer.Company,
		Employee:         rec.Employee.Name,
		Validation:       ret.Validation,
	}
	if !res.IsIntegrityValid {
		s.log.Warn("reference integrity check failed",
			"contentId", contentID,
			"recordId", rec.ID,
		)
	}
	return res, nil
}

// CostEstimate prices a canonical record without validating or uploading it.
type CostEstimate struct {
	CostAtomic string `json:"costAtomic"`
	CostETH    string `json:"costEth"`
	DataSize   int    `json:"dataSize"`
}

// EstimateCost canonicalizes raw input and prices its serialized byte length.
func (s *Service) EstimateCost(ctx context.Context, raw record.Raw) (*CostEstimate, error) {
	rec, err := record.New(raw)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	cost, err := s.client.Price(ctx, len(data))
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, fault.CodeNetwork, "storage price query failed", err)
	}
	costETH, err := units.FromAtomic(cost, s.decimals)
	if err != nil {
		return nil, err
	}
	return &CostEstimate{CostAtomic: cost, CostETH: costETH, DataSize: len(data)}, nil
}

// FundResult acknowledges a deposit.
type FundResult struct {
	TxID         string `json:"txId"`
	Amount       string `json:"amount"`
	AmountAtomic string `json:"amountAtomic"`
}

// Fund converts a decimal amount to atomic units and deposits it.
func (s *Service) Fund(ctx context.Context, amountDecimal string) (*FundResult, error) {
	atomic, err := units.ToAtomic(amountDecimal, s.decimals)
	if err != nil {
		return nil, err
	}
	receipt, err := s.client.Fund(ctx, atomic)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, fault.CodeNetwork, "account funding failed", err)
	}
	s.log.Info("account funded", "amount", amountDecimal, "atomic", atomic, "txId", receipt.ID)
	return &FundResult{TxID: receipt.ID, Amount: amountDecimal, AmountAtomic: atomic}, nil
}

// BatchResult is one slot of a BatchStore outcome.
type BatchResult struct {
	Result *StoreResult `json:"result,omitempty"`
	Err    error        `json:"-"`
	Input  record.Raw   `json:"-"`
}

// BatchStore applies Store to each element independently and sequentially.
// A failure on one element is captured in its slot without aborting the
// remaining elements.
func (s *Service) BatchStore(ctx context.Context, raws []record.Raw) []BatchResult {
	out := make([]BatchResult, 0, len(raws))
	for _, raw := range raws {
		res, err := s.Store(ctx, raw)
		if err != nil {
			s.log.Warn("batch slot failed", "error", err)
			out = append(out, BatchResult{Err: err, Input: raw})
			continue
		}
		out = append(out, BatchResult{Result: res, Input: raw})
	}
	return out
}

// NFTMetadata retrieves a stored record and synthesizes its NFT metadata
// document.
func (s *Service) NFTMetadata(ctx context.Context, contentID string) (*record.NFTMetadata, error) {
	ret, err := s.Retrieve(ctx, contentID)
	if err != nil {
		return nil, err
	}
	return record.NewNFTMetadata(ret.Record, contentID, s.gateway), nil
}

// Status reports the account's balance in atomic and decimal form.
type Status struct {
	BalanceAtomic string `json:"balanceAtomic"`
	Balance       string `json:"balance"`
}

// AccountStatus queries the current account balance.
func (s *Service) AccountStatus(ctx context.Context) (*Status, error) {
	balance, err := s.client.Balance(ctx)
	if err != nil {
		return nil, fault.Wrap(fault.KindNetwork, fault.CodeNetwork, "balance query failed", err)
	}
	human, err := units.FromAtomic(balance, s.decimals)
	if err != nil {
		return nil, err
	}
	return &Status{BalanceAtomic: balance, Balance: human}, nil
}

func (s *Service) checkBalance(ctx context.Context, byteLength int) (units.BalanceCheck, error) {
	cost, err := s.client.Price(ctx, byteLength)
	if err != nil {
		return units.BalanceCheck{}, fault.Wrap(fault.KindNetwork, fault.CodeNetwork, "storage price query failed", err)
	}
	balance, err := s.client.Balance(ctx)
	if err != nil {
		return units.BalanceCheck{}, fault.Wrap(fault.KindNetwork, fault.CodeNetwork, "balance query failed", err)
	}
	return units.CheckBalance(cost, balance)
}
