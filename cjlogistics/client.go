package cjlogistics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

const (
	procOneDayToken   = "ReqOneDayToken"
	procIssueTracking = "RegInvcNo"

	// ResultSuccess is the RESULT_CD value for a successful call.
	ResultSuccess = "S"

	tokenExpireLayout = "20060102150405"
	callTimeout       = 30 * time.Second
)

// BoxMeta describes one packing box for tracking-number issuance.
type BoxMeta struct {
	BoxNo       int
	BoxName     string
	CenterNo    string
	CenterName  string
	BoxSpecCode string
}

// IssueResult is the normalized issuance response.
type IssueResult struct {
	Success        bool
	TrackingNumber string
	ResultCode     string
	ResultDetail   string
}

// Client calls the CJ logistics gateway with a one-day token cached in DB.
type Client struct {
	Db        *sqlx.DB
	BaseURL   string
	CustID    string
	BizRegNum string
	HTTP      *http.Client
}

// NewClient builds a client with the fixed call timeout.
func NewClient(db *sqlx.DB, baseURL, custID, bizRegNum string) *Client {
	return &Client{
		Db:        db,
		BaseURL:   baseURL,
		CustID:    custID,
		BizRegNum: bizRegNum,
		HTTP:      &http.Client{Timeout: callTimeout},
	}
}

// IssueTracking requests one carrier tracking number for one box.
func (c *Client) IssueTracking(ctx context.Context, box BoxMeta) (*IssueResult, error) {
	resp, err := c.request(ctx, procIssueTracking, map[string]interface{}{
		"CUST_ID":     c.CustID,
		"BOX_NM":      box.BoxName,
		"CENTER_NO":   box.CenterNo,
		"CENTER_NM":   box.CenterName,
		"BOX_TYPE_CD": box.BoxSpecCode,
	})
	if err != nil {
		return nil, err
	}

	result := &IssueResult{
		Success:      resp.ResultCd == ResultSuccess,
		ResultCode:   resp.ResultCd,
		ResultDetail: resp.ResultDetail,
	}
	if result.Success {
		result.TrackingNumber = resp.Data.InvcNo
		if result.TrackingNumber == "" {
			result.Success = false
			result.ResultDetail = "issuance succeeded but no INVC_NO in payload"
		}
	}
	return result, nil
}

type gatewayResponse struct {
	ResultCd     string `json:"RESULT_CD"`
	ResultDetail string `json:"RESULT_DETAIL"`
	Data         struct {
		InvcNo        string `json:"INVC_NO"`
		TokenNum      string `json:"TOKEN_NUM"`
		TokenExprnDtm string `json:"TOKEN_EXPRTN_DTM"`
	} `json:"DATA"`
}

// request posts one gateway call, attaching a valid token.
func (c *Client) request(ctx context.Context, process string, data map[string]interface{}) (*gatewayResponse, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	data["TOKEN_NUM"] = token

	resp, err := c.post(ctx, process, data, token)
	if err != nil {
		return nil, fmt.Errorf("cj logistics %s request failed: %w", process, err)
	}
	return resp, nil
}

type tokenRow struct {
	Token      string `db:"token"`
	ExpireDate string `db:"token_expire_date"`
}

const (
	queryToken  = `SELECT IFNULL(token, '') AS token, IFNULL(token_expire_date, '') AS token_expire_date FROM COM_TOKEN WHERE token_type = 'cj_logistics'`
	updateToken = `UPDATE COM_TOKEN SET token = ?, token_expire_date = ? WHERE token_type = 'cj_logistics'`
	insertToken = `INSERT INTO COM_TOKEN (token_type, token, token_expire_date) VALUES ('cj_logistics', ?, ?)`
)

// token returns the cached one-day token, refreshing it when less than
// five minutes remain.
func (c *Client) token(ctx context.Context) (string, error) {
	var row tokenRow
	err := c.Db.Get(&row, queryToken)
	cached := err == nil

	if cached && row.ExpireDate != "" {
		expire, perr := time.ParseInLocation(tokenExpireLayout, row.ExpireDate, time.Local)
		if perr == nil && time.Until(expire) > 5*time.Minute {
			return row.Token, nil
		}
	}

	resp, err := c.post(ctx, procOneDayToken, map[string]interface{}{
		"CUST_ID":     c.CustID,
		"BIZ_REG_NUM": c.BizRegNum,
	}, "")
	if err != nil {
		// stale token beats none at all
		if cached && row.Token != "" {
			log.Warnf("Refresh cj logistics token failed, using cached token: %v", err)
			return row.Token, nil
		}
		return "", err
	}
	if resp.ResultCd != ResultSuccess || resp.Data.TokenNum == "" {
		if cached && row.Token != "" {
			return row.Token, nil
		}
		return "", fmt.Errorf("cj logistics token request failed: [%s] %s", resp.ResultCd, resp.ResultDetail)
	}

	if cached {
		_, err = c.Db.Exec(updateToken, resp.Data.TokenNum, resp.Data.TokenExprnDtm)
	} else {
		_, err = c.Db.Exec(insertToken, resp.Data.TokenNum, resp.Data.TokenExprnDtm)
	}
	if err != nil {
		log.Errorf("Save cj logistics token failed: %v", err)
	}
	return resp.Data.TokenNum, nil
}

func (c *Client) post(ctx context.Context, process string, data map[string]interface{}, token string) (*gatewayResponse, error) {
	payload, err := json.Marshal(map[string]interface{}{"DATA": data})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+process, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("CJ-Gateway-APIKey", token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}

	var out gatewayResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
