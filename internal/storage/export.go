package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/rodviz/internal/rod"
)

type ExportData struct {
	RodLength int        `json:"rod_length"`
	Prices    []float64  `json:"prices"`
	Steps     []rod.Step `json:"steps"`
	Result    rod.Result `json:"result"`
}

func NewExportData(prices []float64, trace []rod.Step) ExportData {
	res := rod.Final(trace)
	return ExportData{
		RodLength: res.Length,
		Prices:    prices,
		Steps:     trace,
		Result:    res,
	}
}

func WriteJSON(w io.Writer, prices []float64, trace []rod.Step) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(prices, trace))
}

func ExportJSON(path string, prices []float64, trace []rod.Step) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, prices, trace)
}

func ExportJSONStdout(prices []float64, trace []rod.Step) error {
	return WriteJSON(os.Stdout, prices, trace)
}
