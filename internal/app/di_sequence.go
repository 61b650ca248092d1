package app

import (
	"fmt"

	codecService "github.com/allisson/serials/internal/codec/service"
	"github.com/allisson/serials/internal/database"
	sequenceHTTP "github.com/allisson/serials/internal/sequence/http"
	sequenceRepository "github.com/allisson/serials/internal/sequence/repository"
	sequenceService "github.com/allisson/serials/internal/sequence/service"
	sequenceUseCase "github.com/allisson/serials/internal/sequence/usecase"
)

// CodecRegistry returns the shared transformer registry.
func (c *Container) CodecRegistry() *codecService.Registry {
	c.codecRegistryInit.Do(func() {
		c.codecRegistry = codecService.NewRegistry(c.config.CodecCacheShards)
	})
	return c.codecRegistry
}

// CodecFactory returns the per-alphabet creator factory.
func (c *Container) CodecFactory() *sequenceService.CodecFactory {
	c.codecFactoryInit.Do(func() {
		c.codecFactory = sequenceService.NewCodecFactory(c.CodecRegistry())
	})
	return c.codecFactory
}

// TweakKeeper returns the keeper used to seal sequence tweaks at rest.
func (c *Container) TweakKeeper() (sequenceService.TweakKeeper, error) {
	var err error
	c.tweakKeeperInit.Do(func() {
		c.tweakKeeper, err = sequenceService.OpenTweakKeeper(c.ctx, c.config.TweakKeeperURI)
		if err != nil {
			c.initErrors["tweakKeeper"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tweakKeeper"]; exists {
		return nil, storedErr
	}
	return c.tweakKeeper, nil
}

// SequenceRepository returns the sequence repository based on database driver.
func (c *Container) SequenceRepository() (sequenceUseCase.SequenceRepository, error) {
	var err error
	c.sequenceRepositoryInit.Do(func() {
		c.sequenceRepository, err = c.initSequenceRepository()
		if err != nil {
			c.initErrors["sequenceRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sequenceRepository"]; exists {
		return nil, storedErr
	}
	return c.sequenceRepository, nil
}

// SequenceUseCase returns the sequence use case.
func (c *Container) SequenceUseCase() (sequenceUseCase.SequenceUseCase, error) {
	var err error
	c.sequenceUseCaseInit.Do(func() {
		c.sequenceUseCase, err = c.initSequenceUseCase()
		if err != nil {
			c.initErrors["sequenceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sequenceUseCase"]; exists {
		return nil, storedErr
	}
	return c.sequenceUseCase, nil
}

// SequenceHandler returns the HTTP handler for sequence operations.
func (c *Container) SequenceHandler() (*sequenceHTTP.SequenceHandler, error) {
	var err error
	c.sequenceHandlerInit.Do(func() {
		c.sequenceHandler, err = c.initSequenceHandler()
		if err != nil {
			c.initErrors["sequenceHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sequenceHandler"]; exists {
		return nil, storedErr
	}
	return c.sequenceHandler, nil
}

// initSequenceRepository creates the sequence repository based on the database driver.
func (c *Container) initSequenceRepository() (sequenceUseCase.SequenceRepository, error) {
	switch c.config.DBDriver {
	case database.DriverPostgres, database.DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for sequence repository: %w", err)
	}

	if c.config.DBDriver == database.DriverMySQL {
		return sequenceRepository.NewMySQLSequenceRepository(db), nil
	}
	return sequenceRepository.NewPostgreSQLSequenceRepository(db), nil
}

// initSequenceUseCase creates the sequence use case with all its dependencies.
func (c *Container) initSequenceUseCase() (sequenceUseCase.SequenceUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for sequence use case: %w", err)
	}

	repository, err := c.SequenceRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence repository for sequence use case: %w", err)
	}

	tweakKeeper, err := c.TweakKeeper()
	if err != nil {
		return nil, fmt.Errorf("failed to get tweak keeper for sequence use case: %w", err)
	}

	baseUseCase := sequenceUseCase.NewSequenceUseCase(
		txManager,
		repository,
		tweakKeeper,
		c.CodecFactory(),
		c.config.SequenceMaxAllocation,
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for sequence use case: %w", err)
		}
		return sequenceUseCase.NewSequenceUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSequenceHandler creates the sequence HTTP handler with all its dependencies.
func (c *Container) initSequenceHandler() (*sequenceHTTP.SequenceHandler, error) {
	useCase, err := c.SequenceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get sequence use case for sequence handler: %w", err)
	}

	return sequenceHTTP.NewSequenceHandler(useCase, c.Logger()), nil
}
