package app

import (
	"github.com/vk/tradegrid/internal/registry"
	"github.com/vk/tradegrid/modules/candlefeed"
	"github.com/vk/tradegrid/modules/envconfig"
	"github.com/vk/tradegrid/modules/httpfeed"
	"github.com/vk/tradegrid/modules/printsink"
	"github.com/vk/tradegrid/modules/socketemit"
	"github.com/vk/tradegrid/modules/staticlevels"
	"github.com/vk/tradegrid/modules/webhook"
)

// coreModules is the definitive list of all modules that are compiled into
// the tradegrid binary.
var coreModules = []registry.Module{
	&candlefeed.Module{},
	&envconfig.Module{},
	&httpfeed.Module{},
	&printsink.Module{},
	&socketemit.Module{},
	&staticlevels.Module{},
	&webhook.Module{},
}
