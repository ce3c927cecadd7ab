// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS criptomonedas (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre TEXT NOT NULL,
	simbolo TEXT NOT NULL UNIQUE,
	tipo TEXT NOT NULL,
	decimales INTEGER NOT NULL DEFAULT 8
);

CREATE TABLE IF NOT EXISTS ciclos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fecha_inicio DATETIME NOT NULL,
	dias_planificados INTEGER NOT NULL CHECK (dias_planificados > 0),
	inversion_inicial TEXT NOT NULL,
	estado TEXT NOT NULL DEFAULT 'activo' CHECK (estado IN ('activo', 'cerrado')),
	fecha_cierre DATETIME,
	dias_operados INTEGER NOT NULL DEFAULT 0,
	ganancia_total TEXT NOT NULL DEFAULT '0',
	capital_final TEXT NOT NULL DEFAULT '0',
	roi_total TEXT NOT NULL DEFAULT '0'
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_ciclos_un_activo ON ciclos(estado) WHERE estado = 'activo';

CREATE TABLE IF NOT EXISTS dias (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ciclo_id INTEGER NOT NULL REFERENCES ciclos(id),
	numero_dia INTEGER NOT NULL CHECK (numero_dia > 0),
	fecha DATETIME NOT NULL,
	capital_inicial TEXT NOT NULL,
	capital_final TEXT NOT NULL DEFAULT '0',
	efectivo_recibido TEXT NOT NULL DEFAULT '0',
	comisiones_pagadas TEXT NOT NULL DEFAULT '0',
	ganancia_bruta TEXT NOT NULL DEFAULT '0',
	ganancia_neta TEXT NOT NULL DEFAULT '0',
	num_ventas INTEGER NOT NULL DEFAULT 0,
	cripto_operada_id INTEGER REFERENCES criptomonedas(id),
	precio_publicado TEXT,
	estado TEXT NOT NULL DEFAULT 'abierto' CHECK (estado IN ('abierto', 'cerrado')),
	fecha_cierre DATETIME,
	UNIQUE (ciclo_id, numero_dia)
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_dias_un_abierto ON dias(ciclo_id) WHERE estado = 'abierto';

CREATE TABLE IF NOT EXISTS boveda_ciclo (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ciclo_id INTEGER NOT NULL REFERENCES ciclos(id),
	cripto_id INTEGER NOT NULL REFERENCES criptomonedas(id),
	cantidad TEXT NOT NULL,
	precio_promedio TEXT NOT NULL,
	UNIQUE (ciclo_id, cripto_id)
);

CREATE TABLE IF NOT EXISTS ventas (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ref TEXT NOT NULL UNIQUE,
	dia_id INTEGER NOT NULL REFERENCES dias(id),
	cripto_id INTEGER NOT NULL REFERENCES criptomonedas(id),
	cantidad TEXT NOT NULL,
	precio_unitario TEXT NOT NULL,
	costo_unitario TEXT NOT NULL,
	costo_total TEXT NOT NULL,
	monto_venta TEXT NOT NULL,
	comision_pct TEXT NOT NULL,
	comision TEXT NOT NULL,
	efectivo_recibido TEXT NOT NULL,
	ganancia_bruta TEXT NOT NULL,
	ganancia_neta TEXT NOT NULL,
	fecha DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ventas_dia ON ventas(dia_id);

CREATE TABLE IF NOT EXISTS efectivo_banco (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ref TEXT NOT NULL UNIQUE,
	ciclo_id INTEGER NOT NULL REFERENCES ciclos(id),
	dia_id INTEGER REFERENCES dias(id),
	monto TEXT NOT NULL,
	concepto TEXT NOT NULL,
	fecha DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_efectivo_ciclo ON efectivo_banco(ciclo_id);

CREATE TABLE IF NOT EXISTS compras (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ref TEXT NOT NULL UNIQUE,
	ciclo_id INTEGER NOT NULL REFERENCES ciclos(id),
	cripto_id INTEGER NOT NULL REFERENCES criptomonedas(id),
	cantidad TEXT NOT NULL,
	monto_usd TEXT NOT NULL,
	tasa TEXT NOT NULL,
	origen TEXT NOT NULL CHECK (origen IN ('fondeo', 'reinversion', 'transferencia')),
	fecha DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_compras_ciclo ON compras(ciclo_id);
`
