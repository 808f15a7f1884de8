package pnaes

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportFileName is the file name the dashboard frontend expects for the
// raw ambulatory download.
const ExportFileName = "dados_saude_brasil.csv"

// ambulatoryHeader lists the CSV columns in source-query order.
var ambulatoryHeader = []string{
	"codigo_municipio",
	"nome_municipio",
	"regiao_nome",
	"uf_sigla",
	"ano_producao_ambulatorial",
	"qtd_total",
	"vl_total",
	"qtd_total_subgrupos",
}

// WriteAmbulatoryCSV writes the raw ambulatory table to w as CSV with a
// header row, all columns, comma-separated.
func WriteAmbulatoryCSV(w io.Writer, records []AmbulatoryRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ambulatoryHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range records {
		r := &records[i]
		row := []string{
			r.MunicipalityCode,
			r.MunicipalityName,
			r.RegionName,
			r.StateAbbr,
			r.Year,
			strconv.FormatInt(r.QuantityTotal, 10),
			strconv.FormatFloat(r.ValueTotal, 'f', -1, 64),
			strconv.FormatInt(r.SubgroupQuantity, 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

// ReadAmbulatoryCSV parses a CSV produced by WriteAmbulatoryCSV back into
// records. The header row must match the export column set exactly.
func ReadAmbulatoryCSV(r io.Reader) ([]AmbulatoryRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) != len(ambulatoryHeader) {
		return nil, fmt.Errorf("read csv header: %w: expected %d columns, got %d", ErrInvalidInput, len(ambulatoryHeader), len(header))
	}
	for i, col := range ambulatoryHeader {
		if header[i] != col {
			return nil, fmt.Errorf("read csv header: %w: column %d is %q, expected %q", ErrInvalidInput, i, header[i], col)
		}
	}

	var records []AmbulatoryRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		qtd, err := strconv.ParseInt(row[5], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: qtd_total: %w", line, err)
		}
		vl, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: vl_total: %w", line, err)
		}
		sub, err := strconv.ParseInt(row[7], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: qtd_total_subgrupos: %w", line, err)
		}

		records = append(records, AmbulatoryRecord{
			MunicipalityCode: row[0],
			MunicipalityName: row[1],
			RegionName:       row[2],
			StateAbbr:        row[3],
			Year:             row[4],
			QuantityTotal:    qtd,
			ValueTotal:       vl,
			SubgroupQuantity: sub,
		})
	}

	return records, nil
}
