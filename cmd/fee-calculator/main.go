package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cloud-ru/subscription-pricing-go/internal/batch"
	"github.com/cloud-ru/subscription-pricing-go/internal/calculations"
	"github.com/cloud-ru/subscription-pricing-go/internal/config"
	"github.com/cloud-ru/subscription-pricing-go/internal/reference"
	"github.com/cloud-ru/subscription-pricing-go/pkg/logger"
)

const separator = "----------------------------------------"

func main() {
	input := flag.String("input", "", "входной xlsx с колонками key, price, option_price, fuel, company, key_subsidy")
	output := flag.String("output", "", "выходной xlsx; по умолчанию listing_<дата>.xlsx рядом с входным")
	sheet := flag.String("sheet", "", "лист входного файла; по умолчанию первый")
	verbose := flag.Bool("summary", false, "печатать полную сводку по каждой цене")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	engine, err := cfg.Engine()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch {
	case *input != "":
		log, err := logger.New(cfg.LogLevel)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer log.Sync()
		if err := runBatch(context.Background(), cfg, engine, log, *input, *output, *sheet); err != nil {
			log.Fatal("Batch pricing failed", zap.Error(err))
		}
	case flag.NArg() > 0:
		if err := quick(os.Stdout, engine, flag.Args(), *verbose); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		interactive(os.Stdin, os.Stdout, engine)
	}
}

// parsePrice принимает "20340000" и "20,340,000"
func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("잘못된 가격 형식: %s", s)
	}
	return v, nil
}

func printFees(w io.Writer, engine *calculations.Engine, price float64, verbose bool) error {
	result, err := engine.CalculateComplete(calculations.PricingInput{
		SubscriptionInput: calculations.SubscriptionInput{CarPrice: price, Terms: []int{12}},
	})
	if err != nil {
		return err
	}
	p := message.NewPrinter(language.Korean)
	p.Fprintf(w, "차량 가격: %d원\n", int64(price))
	p.Fprintf(w, "반납형 12개월: %d원\n", result.SubscriptionFees[calculations.FeeReturnKey(12)])
	p.Fprintf(w, "인수형 12개월: %d원\n", result.SubscriptionFees[calculations.FeePurchaseKey(12)])
	if verbose {
		fmt.Fprint(w, result.FormatSummary())
	}
	fmt.Fprintln(w, separator)
	return nil
}

// quick считает 12-месячные тарифы для цен из аргументов
func quick(w io.Writer, engine *calculations.Engine, args []string, verbose bool) error {
	fmt.Fprintln(w, "=== 구독료 계산 결과 ===")
	fmt.Fprintln(w)
	for _, arg := range args {
		price, err := parsePrice(arg)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		if err := printFees(w, engine, price, verbose); err != nil {
			return err
		}
	}
	return nil
}

func interactive(r io.Reader, w io.Writer, engine *calculations.Engine) {
	fmt.Fprintln(w, "=== Fee Calculator 대화형 모드 ===")
	fmt.Fprintln(w, "종료하려면 'q' 입력")
	fmt.Fprintln(w)

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "차량 가격 입력: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "q") {
			break
		}
		price, err := parsePrice(line)
		if err != nil {
			fmt.Fprintln(w, "올바른 숫자를 입력해주세요.")
			continue
		}
		fmt.Fprintln(w)
		if err := printFees(w, engine, price, false); err != nil {
			fmt.Fprintln(w, err)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "종료합니다.")
}

// outputPath имя выгрузки по дате отчета
func outputPath(input, output string, day time.Time) string {
	if output != "" {
		return output
	}
	return filepath.Join(filepath.Dir(input), "listing_"+day.Format("20060102")+".xlsx")
}

func runBatch(ctx context.Context, cfg *config.Config, engine *calculations.Engine, log *zap.Logger, input, output, sheet string) error {
	day, err := cfg.ReportDay(time.Now())
	if err != nil {
		return err
	}

	subsidies := reference.NewSubsidyTable(nil)
	if cfg.SubsidyFile != "" {
		if subsidies, err = reference.LoadSubsidyXLSX(cfg.SubsidyFile); err != nil {
			return err
		}
	}

	rows, err := batch.ReadRows(input, sheet)
	if err != nil {
		return err
	}
	log.Info("Input loaded", zap.String("file", input), zap.Int("rows", len(rows)))

	pricer := &batch.Pricer{
		Config:    cfg,
		Engine:    engine,
		Subsidies: subsidies,
		Terms:     calculations.DefaultTerms,
		Workers:   cfg.BatchWorkers,
		Logger:    log,
	}
	results, err := pricer.Price(ctx, rows)
	if err != nil {
		return err
	}

	path := outputPath(input, output, day)
	if err := batch.WriteResults(path, "listing", results, pricer.Terms); err != nil {
		return err
	}
	log.Info("Listing saved", zap.String("file", path))
	return nil
}
