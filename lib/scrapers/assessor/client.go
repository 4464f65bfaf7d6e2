package assessor

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"assessorscraper/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/assessor")

const defaultBaseUrl = "https://ariisp1.oklahomacounty.org/AssessorWP5"

// Client scrapes the county assessor's property record pages. Methods
// are synchronous, each call blocks until its page is fetched (or the
// retry policy gives up, if it is bounded at all).
type Client struct {
	http  *resty.Client
	retry RetryPolicy
}

type ClientOptions struct {
	// BaseUrl overrides the assessor site root, used by tests.
	BaseUrl string
	Retry   RetryPolicy
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	parsed, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(parsed.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/assessor/http")

	return &Client{
		http:  client,
		retry: opts.Retry,
	}, nil
}

// propertyPage fetches the AN-R page for a property id, retrying
// transient network failures per the client's retry policy.
func (c *Client) propertyPage(ctx context.Context, propertyid int64) ([]byte, error) {
	var body []byte
	err := c.retry.Do(ctx, "fetch property page", func() error {
		res, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("PROPERTYID", strconv.FormatInt(propertyid, 10)).
			Get("/AN-R.asp")
		if err != nil {
			return err
		}
		if res.StatusCode() >= 500 {
			return &transientStatusError{status: res.StatusCode()}
		}
		if res.StatusCode() != http.StatusOK {
			return &StructuralError{
				PropertyID: propertyid,
				Stage:      "fetch",
				Detail:     "unexpected status " + strconv.Itoa(res.StatusCode()),
			}
		}
		body = res.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Scrape pulls the full record for a property: the top table plus
// every child table. Child lists are rebuilt from scratch on every
// call, nothing merges with earlier runs.
func (c *Client) Scrape(ctx context.Context, propertyid int64) (*RealProperty, error) {
	ctx, span := tracer.Start(ctx, "client:Scrape")
	defer span.End()

	prop, err := c.Property(ctx, PropertySource{PropertyID: propertyid})
	if err != nil {
		return nil, err
	}

	prop.Valuations, err = c.Valuations(ctx, propertyid)
	if err != nil {
		return nil, err
	}
	prop.Deeds, err = c.Deeds(ctx, propertyid)
	if err != nil {
		return nil, err
	}
	prop.Permits, err = c.Permits(ctx, propertyid)
	if err != nil {
		return nil, err
	}
	prop.Buildings, err = c.Buildings(ctx, propertyid)
	if err != nil {
		return nil, err
	}

	return prop, nil
}
