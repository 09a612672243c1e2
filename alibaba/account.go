package alibaba

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Account is one 1688 buyer-side credential and delivery-address set.
type Account struct {
	AccountNo    int    `db:"account_info_no_1688"`
	LoginID      string `db:"login_id_1688"`
	BaseURL      string `db:"base_url"`
	AppKey       string `db:"app_key"`
	AppSecret    string `db:"app_secret"`
	AccessToken  string `db:"access_token"`
	Message      string `db:"message"`
	AddressID    string `db:"address_id"`
	FullName     string `db:"full_name"`
	Mobile       string `db:"mobile"`
	Phone        string `db:"phone"`
	PostCode     string `db:"post_code"`
	CityText     string `db:"city_text"`
	ProvinceText string `db:"province_text"`
	AreaText     string `db:"area_text"`
	TownText     string `db:"town_text"`
	Address      string `db:"address"`
	DistrictCode string `db:"district_code"`
}

// AccountProvider selects the credential set that signs an API call.
type AccountProvider interface {
	// Pick returns a random account.
	Pick() (Account, error)
	// Get returns the account with the given number.
	Get(accountNo int) (Account, error)
	// Reload re-reads all accounts from the backing store.
	Reload() error
}

const queryAccounts = `SELECT account_info_no_1688,
       IFNULL(login_id_1688, '')  AS login_id_1688,
       IFNULL(base_url, '')       AS base_url,
       IFNULL(app_key, '')        AS app_key,
       IFNULL(app_secret, '')     AS app_secret,
       IFNULL(access_token, '')   AS access_token,
       IFNULL(message, '')        AS message,
       IFNULL(address_id, '')     AS address_id,
       IFNULL(full_name, '')      AS full_name,
       IFNULL(mobile, '')         AS mobile,
       IFNULL(phone, '')          AS phone,
       IFNULL(post_code, '')      AS post_code,
       IFNULL(city_text, '')      AS city_text,
       IFNULL(province_text, '')  AS province_text,
       IFNULL(area_text, '')      AS area_text,
       IFNULL(town_text, '')      AS town_text,
       IFNULL(address, '')        AS address,
       IFNULL(district_code, '')  AS district_code
FROM COM_ACCOUNT_INFO_1688`

// DBAccountProvider keeps all accounts in memory and reloads on demand.
type DBAccountProvider struct {
	Db *sqlx.DB

	mu       sync.RWMutex
	accounts map[int]Account
}

// Reload replaces the in-memory account set with the current DB contents.
func (p *DBAccountProvider) Reload() error {
	var accounts []Account
	if err := p.Db.Select(&accounts, queryAccounts); err != nil {
		return err
	}

	m := make(map[int]Account, len(accounts))
	for _, a := range accounts {
		m[a.AccountNo] = a
	}

	p.mu.Lock()
	p.accounts = m
	p.mu.Unlock()
	return nil
}

func (p *DBAccountProvider) Pick() (Account, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.accounts) == 0 {
		return Account{}, errors.New("no 1688 accounts loaded, call Reload first")
	}
	nos := make([]int, 0, len(p.accounts))
	for no := range p.accounts {
		nos = append(nos, no)
	}
	return p.accounts[nos[rand.Intn(len(nos))]], nil
}

func (p *DBAccountProvider) Get(accountNo int) (Account, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	a, ok := p.accounts[accountNo]
	if !ok {
		return Account{}, fmt.Errorf("1688 account %d not found", accountNo)
	}
	return a, nil
}
