package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/config"
	"github.com/angelmondragon/tastybytes-dashboard/pkg/logger"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	metadataCheckTimeout = 10 * time.Second
)

type Client struct {
	client    *bigquery.Client
	projectID string
	tables    []TableID
}

// TableID is a fully-qualified BigQuery table.
type TableID struct {
	ProjectID string
	DatasetID string
	TableID   string
}

func (t TableID) String() string {
	return fmt.Sprintf("%s.%s.%s", t.ProjectID, t.DatasetID, t.TableID)
}

var (
	errProjectIDRequired    = errors.New("gcp project id is required")
	errTableNameRequired    = errors.New("bigquery table name is required")
	errClientNotInitialized = errors.New("bigquery client not initialized")
)

type Pinger interface {
	Ping(context.Context) error
}

// NewClient creates a BigQuery client and verifies every table the dashboard reads.
func NewClient(ctx context.Context, gcp config.GCPConfig, cfg config.BigQueryConfig, tables []string, logg *logger.Logger) (*Client, error) {
	projectID := strings.TrimSpace(gcp.ProjectID)
	if projectID == "" {
		return nil, errProjectIDRequired
	}
	if len(tables) == 0 {
		return nil, errTableNameRequired
	}

	ids := make([]TableID, 0, len(tables))
	for _, ref := range tables {
		id, err := ParseTableRef(ref, projectID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	opts := clientOptions(gcp)
	bqClient, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}
	if location := strings.TrimSpace(cfg.Location); location != "" {
		bqClient.Location = location
	}

	client := &Client{
		client:    bqClient,
		projectID: projectID,
		tables:    ids,
	}

	if err := client.ensureTables(ctx); err != nil {
		_ = bqClient.Close()
		return nil, err
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "tables", len(ids)), "bigquery client initialized")
	}

	return client, nil
}

// ParseTableRef splits "project.dataset.table" or "dataset.table" (defaulting the project).
func ParseTableRef(ref, defaultProject string) (TableID, error) {
	trimmed := strings.Trim(strings.TrimSpace(ref), "`")
	if trimmed == "" {
		return TableID{}, errTableNameRequired
	}
	parts := strings.Split(trimmed, ".")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return TableID{}, fmt.Errorf("invalid bigquery table reference %q", ref)
		}
	}
	switch len(parts) {
	case 3:
		return TableID{ProjectID: parts[0], DatasetID: parts[1], TableID: parts[2]}, nil
	case 2:
		if strings.TrimSpace(defaultProject) == "" {
			return TableID{}, errProjectIDRequired
		}
		return TableID{ProjectID: defaultProject, DatasetID: parts[0], TableID: parts[1]}, nil
	default:
		return TableID{}, fmt.Errorf("invalid bigquery table reference %q: expected [project.]dataset.table", ref)
	}
}

func clientOptions(gcp config.GCPConfig) []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(gcp.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(gcp.CredentialsJSON)))
	case strings.TrimSpace(gcp.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}
	return opts
}

func (c *Client) ensureTables(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, metadataCheckTimeout)
	defer cancel()

	for _, id := range c.tables {
		table := c.client.DatasetInProject(id.ProjectID, id.DatasetID).Table(id.TableID)
		if _, err := table.Metadata(ctx); err != nil {
			if isNotFound(err) {
				return fmt.Errorf("table %q does not exist", id.String())
			}
			return fmt.Errorf("checking table %q: %w", id.String(), err)
		}
	}

	return nil
}

// Ping verifies the dashboard tables are accessible.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return errClientNotInitialized
	}
	return c.ensureTables(ctx)
}

// Query executes SQL against BigQuery and returns the row iterator.
func (c *Client) Query(ctx context.Context, sql string, params []bigquery.QueryParameter) (*bigquery.RowIterator, error) {
	if c == nil || c.client == nil {
		return nil, errClientNotInitialized
	}
	if strings.TrimSpace(sql) == "" {
		return nil, errors.New("sql query is required")
	}
	q := c.client.Query(sql)
	q.Parameters = params
	return q.Read(ctx)
}

// Select runs sql and returns every row keyed by result column name.
func (c *Client) Select(ctx context.Context, sql string) ([]map[string]any, error) {
	iter, err := c.Query(ctx, sql, nil)
	if err != nil {
		return nil, err
	}
	return readRecords(
		func(dst *[]bigquery.Value) error { return iter.Next(dst) },
		func() bigquery.Schema { return iter.Schema },
	)
}

// TableRef quotes a table reference for standard SQL.
func (c *Client) TableRef(name string) string {
	return "`" + strings.Trim(strings.TrimSpace(name), "`") + "`"
}

// Close releases the BigQuery client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// readRecords drains an iterator; the schema is only known after the first Next.
func readRecords(next func(*[]bigquery.Value) error, schema func() bigquery.Schema) ([]map[string]any, error) {
	records := []map[string]any{}
	for {
		var values []bigquery.Value
		if err := next(&values); err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, fmt.Errorf("reading bigquery row: %w", err)
		}
		fields := schema()
		if len(fields) != len(values) {
			return nil, fmt.Errorf("bigquery row has %d values for %d schema fields", len(values), len(fields))
		}
		record := make(map[string]any, len(values))
		for i, field := range fields {
			record[field.Name] = values[i]
		}
		records = append(records, record)
	}
	return records, nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
