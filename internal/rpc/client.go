// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

var requestTimeout = 5 * time.Second

type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Client issues read-only JSON-RPC queries against the development chain.
type Client struct {
	rpcURL string
	client *http.Client
}

func NewClient(rpcURL string) *Client {
	return &Client{
		rpcURL: rpcURL,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) ChainID(ctx context.Context) (int64, error) {
	var chainID ethtypes.HexInteger
	if err := c.call(ctx, "eth_chainId", &chainID); err != nil {
		return -1, err
	}
	return chainID.BigInt().Int64(), nil
}

func (c *Client) BlockNumber(ctx context.Context) (int64, error) {
	var blockNumber ethtypes.HexInteger
	if err := c.call(ctx, "eth_blockNumber", &blockNumber); err != nil {
		return -1, err
	}
	return blockNumber.BigInt().Int64(), nil
}

func (c *Client) call(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	if params == nil {
		params = []interface{}{}
	}
	requestBody, err := json.Marshal(&Request{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(requestBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s [%d] %s", c.rpcURL, resp.StatusCode, responseBody)
	}
	var rpcResponse Response
	if err := json.Unmarshal(responseBody, &rpcResponse); err != nil {
		return fmt.Errorf("invalid response from %s: %w", c.rpcURL, err)
	}
	if rpcResponse.Error != nil {
		return fmt.Errorf("%s returned error %d: %s", method, rpcResponse.Error.Code, rpcResponse.Error.Message)
	}
	return json.Unmarshal(rpcResponse.Result, result)
}
