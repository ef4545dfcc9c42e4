package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	fx "github.com/robotalks/motorctl/pkg/framework"
	"github.com/robotalks/motorctl/pkg/l0/motor"
	"github.com/robotalks/motorctl/pkg/l1"
	env "github.com/robotalks/motorctl/pkg/l1/env/controller"
	motorbot "github.com/robotalks/motorctl/pkg/sim/bots/motor"
	"github.com/robotalks/motorctl/pkg/sim/physics"
	"github.com/robotalks/motorctl/pkg/sim/visualization/scope"
)

func init() {
	env.SetBoardType("motor", l1.BoardMeta{Description: "Simulation: dual switch-mode driver"})
	env.SetupFlags()
	motor.SetupFlags()
	physics.SetupPlantFlags()
	motorbot.SetupFlags()
	scope.SetupFlags()
}

func main() {
	flag.Parse()

	motorConf, err := motor.LoadConfig()
	if err != nil {
		log.Fatalln(err)
	}
	env := env.NewConfig().MustNewEnv()
	botConf := motorbot.NewConfig()
	botConf.Motor = motorConf
	botConf.Plant = *physics.DefaultPlant()
	bot, err := botConf.NewController(env)
	if err != nil {
		log.Fatalln(err)
	}

	loop := fx.NewLoop().Add(env, bot)
	if scopeConf := scope.NewConfig(); scopeConf.Enabled() {
		vis, closer, err := scopeConf.NewAdapter()
		if err != nil {
			log.Fatalln(err)
		}
		defer closer.Close()
		loop.Add(vis.Subscribe(bot))
	}
	if err := fx.NewRunner().HandleSignals().Go(loop).Wait(); err != nil {
		log.Println(err)
	}
}
