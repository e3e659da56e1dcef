// Package platform implements usecase.Executor against a remote
// contract deployment platform's HTTP API: deploy_library,
// compile_contract, deploy_contract, submit_transaction and set_proxy
// each become one JSON request.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/simbachain/libsimba-deploy/internal/domain/models"
	"github.com/simbachain/libsimba-deploy/internal/usecase"
)

// Client is the default usecase.Executor, talking to the platform over
// HTTPS. Every request carries a freshly generated Idempotency-Key
// header; a retried call after a FAILED_* action carries a new key, so
// the platform does not recognise it as a repeat of the earlier call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New builds a Client against baseURL, authenticating with apiKey.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// DeployLibrary implements usecase.LibraryExecutor.
func (c *Client) DeployLibrary(ctx context.Context, params usecase.DeployLibraryParams) (*models.Contract, error) {
	var contract models.Contract
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/organisations/%s/applications/%s/contract/%s/deploy-library/", params.Org, params.AppName, params.LibName), map[string]any{
		"code":       params.Code,
		"blockchain": params.Blockchain,
		"encode":     params.Encode,
	}, &contract)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// CompileContract implements usecase.CompileExecutor.
func (c *Client) CompileContract(ctx context.Context, params usecase.CompileParams) (*models.Contract, error) {
	var contract models.Contract
	err := c.do(ctx, http.MethodPost, "/contract/compile/", map[string]any{
		"name":            params.Name,
		"code":            params.Code,
		"target_contract": params.TargetContract,
		"libraries":       params.Libraries,
		"encode":          params.Encode,
	}, &contract)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// DeployContract implements usecase.DeployExecutor.
func (c *Client) DeployContract(ctx context.Context, params usecase.DeployContractParams) (*models.Contract, error) {
	var contract models.Contract
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/organisations/%s/applications/%s/contract/designs/%s/deploy/", params.AppName, params.Storage, params.Contract.DesignID), map[string]any{
		"api_name":   params.APIName,
		"blockchain": params.Blockchain,
		"storage":    params.Storage,
		"args":       params.Args,
	}, &contract)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// SubmitTransaction implements usecase.TransactionExecutor.
func (c *Client) SubmitTransaction(ctx context.Context, params usecase.SubmitTransactionParams) (string, error) {
	var result struct {
		TransactionHash string `json:"transaction_hash"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/apps/%s/contract/%s/", params.APIName, params.Method), map[string]any{
		"args": params.Args,
		"wait": params.Wait,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.TransactionHash, nil
}

// SetProxy implements usecase.ProxyExecutor.
func (c *Client) SetProxy(ctx context.Context, params usecase.SetProxyParams) (string, error) {
	var result struct {
		TransactionHash string `json:"transaction_hash"`
	}
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/apps/%s/contract/%s/set-proxy/", params.Workflow.AppName, params.ProxyContract.APIName), map[string]any{
		"proxy_address": params.ProxyContract.Address,
		"impl_address":  params.ImplContract.Address,
	}, &result)
	if err != nil {
		return "", err
	}
	return result.TransactionHash, nil
}

// do issues a JSON request against path and decodes the response into
// out. A fresh idempotency key is generated per call; keys are not
// reused across calls, including a Driver retry of a FAILED_* action.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

var _ usecase.Executor = (*Client)(nil)
