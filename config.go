package main

import (
	"ContractTestGen/app/clients"
	"ContractTestGen/app/configs"
	"ContractTestGen/app/models"
	"ContractTestGen/app/storage"
)

func getDB(cfg *configs.Config) (storage.Interface, error) {
	if !cfg.Storage.Enabled {
		return storage.NopStorage{}, nil
	}
	return storage.NewSQLiteStorage(cfg.Storage.Path)
}

func getModel(cfg *configs.Config, db storage.Interface) models.Interface {
	return models.NewLLMClient(db, cfg.ClientConfig())
}

func getClients(cfg *configs.Config) (*clients.Registry, error) {
	registry := clients.NewRegistry()
	if err := registry.Load(cfg.Clients); err != nil {
		registry.CloseAll()
		return nil, err
	}
	return registry, nil
}
