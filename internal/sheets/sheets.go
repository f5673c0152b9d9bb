// Package sheets stores the roster, lineup and ledger tables in a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"mr-league/internal/ledger"
	"mr-league/internal/models"
)

// Table headers as they appear in the spreadsheet.
const (
	HeaderPlayer   = "PLAYER"
	HeaderPosition = "POSIÇÃO"
	HeaderRound    = "RODADA"
	HeaderTeam     = "TIME"
	HeaderLineup   = "JOGADOR"
)

var ErrSpreadsheetNotFound = errors.New("spreadsheet not found")

type Options struct {
	SpreadsheetID   string
	SpreadsheetName string
	PlayersSheet    string
	LineupsSheet    string
	LedgerSheet     string
	// MatchIDColumn is 1-based; zero means ledger.MatchIDColumn.
	MatchIDColumn int
}

type Client struct {
	values *sheets.SpreadsheetsValuesService
	id     string
	opts   Options
}

// Open connects with the given client options (credentials, endpoint). When no
// spreadsheet id is configured it is looked up by name through Drive.
func Open(ctx context.Context, o Options, clientOpts ...option.ClientOption) (*Client, error) {
	srv, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	id := o.SpreadsheetID
	if id == "" {
		id, err = lookupByName(ctx, o.SpreadsheetName, clientOpts...)
		if err != nil {
			return nil, err
		}
	}
	if o.MatchIDColumn <= 0 {
		o.MatchIDColumn = ledger.MatchIDColumn
	}

	log.Info().Str("spreadsheet", id).Msg("google sheets store ready")
	return &Client{values: srv.Spreadsheets.Values, id: id, opts: o}, nil
}

// CredentialOptions builds the client options for a service-account key file.
func CredentialOptions(credentialsFile string) []option.ClientOption {
	return []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope, drive.DriveReadonlyScope),
	}
}

func lookupByName(ctx context.Context, name string, clientOpts ...option.ClientOption) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: neither id nor name configured", ErrSpreadsheetNotFound)
	}
	srv, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return "", fmt.Errorf("drive service: %w", err)
	}
	q := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`))
	list, err := srv.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("drive lookup %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %q", ErrSpreadsheetNotFound, name)
	}
	return list.Files[0].Id, nil
}

func (c *Client) SpreadsheetID() string { return c.id }

// records reads a worksheet as header-keyed maps. Blank rows are dropped.
func (c *Client) records(ctx context.Context, sheet string) ([]map[string]string, error) {
	resp, err := c.values.Get(c.id, quote(sheet)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := make([]string, len(resp.Values[0]))
	for i, h := range resp.Values[0] {
		headers[i] = strings.TrimSpace(cellString(h))
	}

	var out []map[string]string
	for _, row := range resp.Values[1:] {
		rec := make(map[string]string, len(headers))
		blank := true
		for i, h := range headers {
			v := ""
			if i < len(row) {
				v = strings.TrimSpace(cellString(row[i]))
			}
			if v != "" {
				blank = false
			}
			rec[h] = v
		}
		if !blank {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Client) Players(ctx context.Context) ([]models.PlayerPosition, error) {
	recs, err := c.records(ctx, c.opts.PlayersSheet)
	if err != nil {
		return nil, err
	}
	out := make([]models.PlayerPosition, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.PlayerPosition{Player: r[HeaderPlayer], Position: r[HeaderPosition]})
	}
	return out, nil
}

// Lineups skips rows whose round is not an integer.
func (c *Client) Lineups(ctx context.Context) ([]models.LineupEntry, error) {
	recs, err := c.records(ctx, c.opts.LineupsSheet)
	if err != nil {
		return nil, err
	}
	out := make([]models.LineupEntry, 0, len(recs))
	for _, r := range recs {
		round, err := strconv.Atoi(r[HeaderRound])
		if err != nil {
			log.Debug().Str("round", r[HeaderRound]).Msg("skipping lineup row")
			continue
		}
		out = append(out, models.LineupEntry{Round: round, Team: r[HeaderTeam], Player: r[HeaderLineup]})
	}
	return out, nil
}

// MatchIDs returns the match id column without its header cell.
func (c *Client) MatchIDs(ctx context.Context) ([]string, error) {
	col := columnLetter(c.opts.MatchIDColumn)
	rng := fmt.Sprintf("%s!%s:%s", quote(c.opts.LedgerSheet), col, col)
	resp, err := c.values.Get(c.id, rng).
		MajorDimension("COLUMNS").
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) <= 1 {
		return nil, nil
	}
	cells := resp.Values[0][1:]
	out := make([]string, len(cells))
	for i, v := range cells {
		out[i] = cellString(v)
	}
	return out, nil
}

// AppendRow adds one row after the last filled row of the ledger. nil cells are sent as
// JSON null and stay empty.
func (c *Client) AppendRow(ctx context.Context, row models.Row) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{[]interface{}(row)}}
	_, err := c.values.Append(c.id, quote(c.opts.LedgerSheet), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", c.opts.LedgerSheet, err)
	}
	return nil
}

func quote(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// columnLetter converts a 1-based column number to A1 letters.
func columnLetter(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}
