package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crediflow/credit-approval/internal/domain/model"
)

// Spreadsheet column headers as exported by the upstream system.
const (
	colCustomerID    = "Customer ID"
	colFirstName     = "First Name"
	colLastName      = "Last Name"
	colAge           = "Age"
	colPhoneNumber   = "Phone Number"
	colMonthlySalary = "Monthly Salary"
	colApprovedLimit = "Approved Limit"

	colLoanID         = "Loan ID"
	colLoanAmount     = "Loan Amount"
	colTenure         = "Tenure"
	colInterestRate   = "Interest Rate"
	colMonthlyPayment = "Monthly payment"
	colEMIsPaid       = "EMIs paid on Time"
	colStartDate      = "Date of Approval"
	colEndDate        = "End Date"
)

const dateLayout = "2006-01-02"

// ReadCustomers parses customer rows from a CSV export of the customer
// spreadsheet. The first record must be the header row.
func ReadCustomers(r io.Reader, now time.Time) ([]model.Customer, error) {
	rows, err := readTable(r, []string{
		colCustomerID, colFirstName, colLastName, colAge,
		colPhoneNumber, colMonthlySalary, colApprovedLimit,
	})
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0, len(rows))
	for i, row := range rows {
		c := model.Customer{
			FirstName:   row[colFirstName],
			LastName:    row[colLastName],
			PhoneNumber: row[colPhoneNumber],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if c.ID, err = strconv.ParseInt(row[colCustomerID], 10, 64); err != nil {
			return nil, rowErr(i, colCustomerID, err)
		}
		if c.Age, err = strconv.Atoi(row[colAge]); err != nil {
			return nil, rowErr(i, colAge, err)
		}
		if c.MonthlySalary, err = decimal.NewFromString(row[colMonthlySalary]); err != nil {
			return nil, rowErr(i, colMonthlySalary, err)
		}
		if c.ApprovedLimit, err = decimal.NewFromString(row[colApprovedLimit]); err != nil {
			return nil, rowErr(i, colApprovedLimit, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// ReadLoans parses loan rows from a CSV export of the loan spreadsheet.
// The stored installment is taken as-is from the sheet, never recomputed.
func ReadLoans(r io.Reader, now time.Time) ([]model.Loan, error) {
	rows, err := readTable(r, []string{
		colLoanID, colCustomerID, colLoanAmount, colTenure, colInterestRate,
		colMonthlyPayment, colEMIsPaid, colStartDate, colEndDate,
	})
	if err != nil {
		return nil, err
	}

	loans := make([]model.Loan, 0, len(rows))
	for i, row := range rows {
		l := model.Loan{
			CreatedAt: now,
			UpdatedAt: now,
		}
		if l.ID, err = strconv.ParseInt(row[colLoanID], 10, 64); err != nil {
			return nil, rowErr(i, colLoanID, err)
		}
		if l.CustomerID, err = strconv.ParseInt(row[colCustomerID], 10, 64); err != nil {
			return nil, rowErr(i, colCustomerID, err)
		}
		if l.LoanAmount, err = decimal.NewFromString(row[colLoanAmount]); err != nil {
			return nil, rowErr(i, colLoanAmount, err)
		}
		if l.Tenure, err = strconv.Atoi(row[colTenure]); err != nil {
			return nil, rowErr(i, colTenure, err)
		}
		if l.InterestRate, err = decimal.NewFromString(row[colInterestRate]); err != nil {
			return nil, rowErr(i, colInterestRate, err)
		}
		if l.MonthlyInstallment, err = decimal.NewFromString(row[colMonthlyPayment]); err != nil {
			return nil, rowErr(i, colMonthlyPayment, err)
		}
		if l.EMIsPaidOnTime, err = strconv.Atoi(row[colEMIsPaid]); err != nil {
			return nil, rowErr(i, colEMIsPaid, err)
		}
		if l.StartDate, err = time.Parse(dateLayout, row[colStartDate]); err != nil {
			return nil, rowErr(i, colStartDate, err)
		}
		if l.EndDate, err = time.Parse(dateLayout, row[colEndDate]); err != nil {
			return nil, rowErr(i, colEndDate, err)
		}
		loans = append(loans, l)
	}
	return loans, nil
}

// readTable reads a header-keyed CSV into a slice of column-name -> value maps.
func readTable(r io.Reader, required []string) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		row := make(map[string]string, len(required))
		for _, name := range required {
			row[name] = strings.TrimSpace(record[index[name]])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowErr(row int, column string, err error) error {
	// +2: one for the header line, one for 1-based numbering.
	return fmt.Errorf("row %d, column %q: %w", row+2, column, err)
}
