package mocks

import (
	"context"
	"hotelier/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct{}

// WithTx implements postgres.Transactor by running fn with a nil transaction.
func (t *transactorImpl) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
