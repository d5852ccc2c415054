// Package provider 行情数据提供方的HTTP客户端
// 上游是一个akshare风格的数据网关，按接口名返回JSON数组
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// 上游接口名，对应akshare同名接口
const (
	EndpointZtPool          = "stock_zt_pool_em"
	EndpointZtPoolDown      = "stock_zt_pool_dtgc_em"
	EndpointIndexDaily      = "stock_zh_index_daily"
	EndpointStockFundFlow   = "stock_individual_fund_flow_rank"
	EndpointConceptFundFlow = "stock_fund_flow_concept"
	EndpointLhbDetail       = "stock_lhb_detail_em"
	EndpointLhbInstitution  = "stock_lhb_jgmmtj_em"
	EndpointInstitutionStat = "stock_lhb_jgstatistic_em"
	EndpointActiveBranch    = "stock_lhb_traderstatistic_em"
	EndpointCapitalDetail   = "stock_lhb_hyyyb_em"
)

// DateParamLayout 上游日期参数格式YYYYMMDD
const DateParamLayout = "20060102"

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.Provider.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Provider.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.Provider.RatePerSecond), cfg.Provider.RateBurst),
		logger:  logger,
	}
}

// Fetch 调用上游接口并把返回的JSON数组解码到dest（指向切片的指针）
// 限流等待、HTTP错误、解码错误都作为provider错误返回
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("provider rate limit wait: %w", err)
	}

	u := fmt.Sprintf("%s/api/public/%s", c.baseURL, endpoint)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d for %s", resp.StatusCode, endpoint)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode provider response for %s: %w", endpoint, err)
	}

	c.logger.Debug("provider fetch ok",
		zap.String("endpoint", endpoint),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(body)))
	if c.logger.Core().Enabled(zap.DebugLevel) {
		c.logger.Debug("provider payload", zap.String("dump", spew.Sdump(dest)))
	}
	return nil
}

// FetchForDate 带date=YYYYMMDD参数的便捷调用
func (c *Client) FetchForDate(ctx context.Context, endpoint string, date time.Time, dest any) error {
	params := url.Values{}
	params.Set("date", date.Format(DateParamLayout))
	return c.Fetch(ctx, endpoint, params, dest)
}
