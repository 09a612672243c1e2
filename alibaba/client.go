package alibaba

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	endpointCreateOrder   = "com.alibaba.trade/alibaba.trade.fastCreateOrder"
	endpointLogisticsInfo = "com.alibaba.logistics/alibaba.trade.getLogisticsInfos.buyerView"
	endpointGroupPay      = "com.alibaba.trade/alibaba.trade.grouppay.url.get"

	// ErrCodeNotShipped is returned by the logistics endpoint while the
	// seller has not handed the order to a carrier yet.
	ErrCodeNotShipped = "500_2"

	callTimeout = 30 * time.Second
)

// CargoItem is one purchasable variant and its quantity.
type CargoItem struct {
	OfferID  string `json:"offerId"`
	SpecID   string `json:"specId,omitempty"`
	Quantity string `json:"quantity"`
}

// CreateOrderRequest places one order against one seller.
type CreateOrderRequest struct {
	AccountNo  int    // 0 picks a random account
	CargoList  []CargoItem
	Message    string
	TradeType  string
	OutOrderID string
}

// CreateOrderResult is the normalized fastCreateOrder response.
type CreateOrderResult struct {
	Success      bool
	OrderID      string
	AccountNo    int
	ErrorCode    string
	ErrorMessage string
}

// LogisticsItem is one carrier record attached to an order.
type LogisticsItem struct {
	LogisticsID        string `json:"logisticsId"`
	Status             string `json:"status"`
	LogisticsCompanyID string `json:"logisticsCompanyId"`
}

// LogisticsResult is the normalized getLogisticsInfos response.
type LogisticsResult struct {
	Success      bool
	NotShipped   bool
	Items        []LogisticsItem
	ErrorCode    string
	ErrorMessage string
}

// GroupPayResult is the normalized grouppay.url.get response.
type GroupPayResult struct {
	Success      bool
	PayURL       string
	ErrorCode    string
	ErrorMessage string
}

// Client calls the 1688 open API with per-account signed requests.
type Client struct {
	Accounts AccountProvider
	HTTP     *http.Client
}

// NewClient builds a client with the fixed call timeout.
func NewClient(accounts AccountProvider) *Client {
	return &Client{
		Accounts: accounts,
		HTTP:     &http.Client{Timeout: callTimeout},
	}
}

// CreateOrder places one purchase order for one seller group.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	account, err := c.account(req.AccountNo)
	if err != nil {
		return nil, err
	}

	addressJSON, err := json.Marshal(map[string]string{
		"addressId":    account.AddressID,
		"fullName":     account.FullName,
		"mobile":       account.Mobile,
		"phone":        account.Phone,
		"postCode":     account.PostCode,
		"cityText":     account.CityText,
		"provinceText": account.ProvinceText,
		"areaText":     account.AreaText,
		"townText":     account.TownText,
		"address":      account.Address,
		"districtCode": account.DistrictCode,
	})
	if err != nil {
		return nil, err
	}

	cargoJSON, err := json.Marshal(req.CargoList)
	if err != nil {
		return nil, err
	}

	message := req.Message
	if message == "" {
		message = account.Message
	}

	params := url.Values{}
	params.Set("flow", "general")
	params.Set("message", message)
	params.Set("addressParam", string(addressJSON))
	params.Set("cargoParamList", string(cargoJSON))
	if req.TradeType != "" {
		params.Set("tradeType", req.TradeType)
	}
	if req.OutOrderID != "" {
		params.Set("outOrderId", req.OutOrderID)
	}

	var resp struct {
		Success bool `json:"success"`
		Result  struct {
			OrderID json.Number `json:"orderId"`
		} `json:"result"`
		ErrorCode    string `json:"errorCode"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := c.call(ctx, account, endpointCreateOrder, params, &resp); err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		Success:      resp.Success,
		OrderID:      resp.Result.OrderID.String(),
		AccountNo:    account.AccountNo,
		ErrorCode:    resp.ErrorCode,
		ErrorMessage: resp.ErrorMessage,
	}, nil
}

// LogisticsInfo fetches the buyer-view carrier records for one order number.
func (c *Client) LogisticsInfo(ctx context.Context, orderNumber string, accountNo int) (*LogisticsResult, error) {
	account, err := c.account(accountNo)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("orderId", orderNumber)
	params.Set("fields", "company.name,sender,receiver,sendgood")
	params.Set("webSite", "1688")

	var resp struct {
		Success      bool            `json:"success"`
		Result       []LogisticsItem `json:"result"`
		ErrorCode    string          `json:"errorCode"`
		ErrorMessage string          `json:"errorMessage"`
	}
	if err := c.call(ctx, account, endpointLogisticsInfo, params, &resp); err != nil {
		return nil, err
	}

	return &LogisticsResult{
		Success:      resp.Success,
		NotShipped:   !resp.Success && resp.ErrorCode == ErrCodeNotShipped,
		Items:        resp.Result,
		ErrorCode:    resp.ErrorCode,
		ErrorMessage: resp.ErrorMessage,
	}, nil
}

// GroupPayURL builds one consolidated payment URL for a batch of order numbers.
func (c *Client) GroupPayURL(ctx context.Context, orderNumbers []string, accountNo int) (*GroupPayResult, error) {
	account, err := c.account(accountNo)
	if err != nil {
		return nil, err
	}

	ids, err := json.Marshal(orderNumbers)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("orderIds", string(ids))
	params.Set("payPlatformType", "PC")

	var resp struct {
		Success      bool   `json:"success"`
		PayURL       string `json:"payUrl"`
		ErrorCode    string `json:"errorCode"`
		ErrorMessage string `json:"errorMessage"`
	}
	if err := c.call(ctx, account, endpointGroupPay, params, &resp); err != nil {
		return nil, err
	}

	return &GroupPayResult{
		Success:      resp.Success,
		PayURL:       resp.PayURL,
		ErrorCode:    resp.ErrorCode,
		ErrorMessage: resp.ErrorMessage,
	}, nil
}

func (c *Client) account(accountNo int) (Account, error) {
	if accountNo > 0 {
		return c.Accounts.Get(accountNo)
	}
	return c.Accounts.Pick()
}

// call signs and posts one form request, decoding the JSON response into out.
func (c *Client) call(ctx context.Context, account Account, endpoint string, params url.Values, out interface{}) error {
	apiPath := fmt.Sprintf("param2/1/%s/%s", endpoint, account.AppKey)
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)

	params.Set("access_token", account.AccessToken)
	params.Set("timestamp", timestamp)
	params.Set("_aop_timestamp", timestamp)
	params.Set("_aop_signature", Sign(apiPath, params, account.AppSecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		account.BaseURL+apiPath, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Debugf("1688 call %s with account %d (%s)", endpoint, account.AccountNo, account.LoginID)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// Sign computes the HMAC-SHA1 request signature: the api path concatenated
// with every key+value pair in key order, keyed by the app secret.
func Sign(apiPath string, params url.Values, appSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "_aop_signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(apiPath)
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString(params.Get(k))
	}

	mac := hmac.New(sha1.New, []byte(appSecret))
	mac.Write([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
